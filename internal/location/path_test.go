package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantdir/internal/models"
)

func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		name  string
		loc   Location
		title string
		id    string
		want  string
	}{
		{"federal", Federal(), "Rural Broadband Fund", "abc-123", "/grants/federal/rural-broadband-fund-abc"},
		{"state", StateLevel("CA"), "Clean Water Grant", "abc-123", "/grants/state/CA/clean-water-grant-abc"},
		{"local", Local("CA", "sacramento"), "Clean Water Grant", "abc-123", "/grants/local/CA/sacramento/clean-water-grant-abc"},
		{"private", Private(), "STEM Scholarship", "abc-123", "/grants/private/stem-scholarship-abc"},
		{"empty title falls back to short id", Federal(), "", "abc-123", "/grants/federal/abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalPath(tt.loc, tt.title, tt.id))
		})
	}
}

func TestCanonicalPathIdempotent(t *testing.T) {
	g := &models.Grant{
		UID:   "f81d4fae-7dec-11d0-a765-00a0c91e6bf6",
		Title: "Community Health Workers Program",
		State: "CA",
		City:  "Sacramento",
	}
	first := GrantPath(g)
	second := GrantPath(g)
	assert.Equal(t, first, second)
	assert.Equal(t, "/grants/local/CA/sacramento/community-health-workers-program-f81d4fae", first)
}

func TestCanonicalPathDisambiguation(t *testing.T) {
	a := CanonicalPath(Federal(), "Water Grant", "abc-123")
	b := CanonicalPath(Federal(), "Water Grant", "def-456")
	assert.NotEqual(t, a, b, "same title with different ids must produce different paths")
}

func TestForGrant(t *testing.T) {
	t.Run("private funding wins over state text", func(t *testing.T) {
		g := &models.Grant{FundingType: models.FundingPrivate, State: "CA", City: "Sacramento"}
		assert.Equal(t, Private(), ForGrant(g))
	})

	t.Run("government grants classify by state and city", func(t *testing.T) {
		g := &models.Grant{FundingType: models.FundingGovernment, State: "Federal"}
		assert.Equal(t, Federal(), ForGrant(g))

		g = &models.Grant{State: "CA", City: "Statewide"}
		assert.Equal(t, StateLevel("CA"), ForGrant(g))
	})

	t.Run("federal state text overrides city", func(t *testing.T) {
		g := &models.Grant{UID: "abc-123", Title: "Test Grant", State: "Federal", City: "Sacramento"}
		require.Equal(t, Federal(), ForGrant(g))
		assert.Equal(t, "/grants/federal/test-grant-abc", GrantPath(g))

		g = &models.Grant{UID: "abc-123", Title: "Test Grant", State: "CA", City: "Sacramento"}
		assert.Equal(t, "/grants/local/CA/sacramento/test-grant-abc", GrantPath(g))
	})
}
