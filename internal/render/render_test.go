package render

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantdir/internal/models"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$1,500,000", FormatAmount(1500000))
	assert.Equal(t, "$250,000", FormatAmount(250000))
	assert.Equal(t, "$999", FormatAmount(999))
	assert.Equal(t, "Varies", FormatAmount(0))
}

func TestAbsoluteURL(t *testing.T) {
	r, err := New("https://grants.example.org/")
	require.NoError(t, err)
	assert.Equal(t, "https://grants.example.org/grants", r.AbsoluteURL("/grants"))
	assert.Equal(t, "https://grants.example.org/grants", r.AbsoluteURL("grants"))
}

func TestHTMLRendersMetadata(t *testing.T) {
	r, err := New("https://grants.example.org")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.HTML(rec, 200, "error", &Page{
		Title:     "Not Found",
		Canonical: "https://grants.example.org/missing",
		Data:      "This page does not exist.",
	})

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Not Found</title>")
	assert.Contains(t, body, `<link rel="canonical" href="https://grants.example.org/missing">`)
	assert.Contains(t, body, "This page does not exist.")
}

func TestGrantJSONLD(t *testing.T) {
	g := &models.Grant{
		Title:  "Clean Water Grant",
		Agency: "EPA",
		Amount: 250000,
	}
	payload := GrantJSONLD(g, "https://grants.example.org/grants/state/CA/clean-water-grant-abc")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Equal(t, "MonetaryGrant", decoded["@type"])
	assert.Equal(t, "Clean Water Grant", decoded["name"])
	funder := decoded["funder"].(map[string]any)
	assert.Equal(t, "EPA", funder["name"])
}

func TestJobJSONLD(t *testing.T) {
	j := &models.JobListing{
		Title:     "Grants Program Manager",
		Agency:    "State of California",
		City:      "Sacramento",
		StateCode: "CA",
	}
	payload := JobJSONLD(j, "https://grants.example.org/jobs/grants-program-manager-job")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Equal(t, "JobPosting", decoded["@type"])
	loc := decoded["jobLocation"].(map[string]any)
	addr := loc["address"].(map[string]any)
	assert.Equal(t, "CA", addr["addressRegion"])
}
