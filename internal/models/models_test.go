package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrantValidate(t *testing.T) {
	t.Run("valid grant", func(t *testing.T) {
		g := &Grant{UID: "abc-123", Title: "Clean Water Grant"}
		assert.NoError(t, g.Validate())
		assert.Equal(t, FundingGovernment, g.FundingType, "funding type defaults to government")
	})

	t.Run("missing title", func(t *testing.T) {
		g := &Grant{UID: "abc-123"}
		assert.Error(t, g.Validate())
	})

	t.Run("missing uid", func(t *testing.T) {
		g := &Grant{Title: "Clean Water Grant"}
		assert.Error(t, g.Validate())
	})

	t.Run("bogus funding type", func(t *testing.T) {
		g := &Grant{UID: "abc-123", Title: "Test", FundingType: "crowdfunded"}
		assert.Error(t, g.Validate())
	})
}

func TestJobValidate(t *testing.T) {
	j := &JobListing{UID: "job-789", Title: "Grants Program Manager"}
	assert.NoError(t, j.Validate())

	assert.Error(t, (&JobListing{Title: "No UID"}).Validate())
	assert.Error(t, (&JobListing{UID: "job-789"}).Validate())
}

func TestFilterNormalize(t *testing.T) {
	f := GrantFilter{Page: -3, PerPage: 10000}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPerPage, f.PerPage)

	f = GrantFilter{Page: 4, PerPage: 50}
	f.Normalize()
	assert.Equal(t, 4, f.Page)
	assert.Equal(t, 50, f.PerPage)
}
