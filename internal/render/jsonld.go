package render

import (
	"encoding/json"
	"html/template"
	"log"

	"grantdir/internal/models"
)

type organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type monetaryAmount struct {
	Type     string  `json:"@type"`
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

type monetaryGrant struct {
	Context     string          `json:"@context"`
	Type        string          `json:"@type"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	URL         string          `json:"url"`
	Funder      *organization   `json:"funder,omitempty"`
	Amount      *monetaryAmount `json:"amount,omitempty"`
}

type jobLocation struct {
	Type    string `json:"@type"`
	Address struct {
		Type            string `json:"@type"`
		AddressLocality string `json:"addressLocality,omitempty"`
		AddressRegion   string `json:"addressRegion,omitempty"`
		AddressCountry  string `json:"addressCountry"`
	} `json:"address"`
}

type jobPosting struct {
	Context            string        `json:"@context"`
	Type               string        `json:"@type"`
	Title              string        `json:"title"`
	URL                string        `json:"url"`
	HiringOrganization *organization `json:"hiringOrganization,omitempty"`
	JobLocation        *jobLocation  `json:"jobLocation,omitempty"`
}

// GrantJSONLD builds the schema.org MonetaryGrant payload for a grant
// detail page. canonicalURL must be absolute.
func GrantJSONLD(g *models.Grant, canonicalURL string) template.JS {
	payload := monetaryGrant{
		Context:     "https://schema.org",
		Type:        "MonetaryGrant",
		Name:        g.Title,
		Description: g.Description,
		URL:         canonicalURL,
	}
	if g.Agency != "" {
		payload.Funder = &organization{Type: "Organization", Name: g.Agency}
	}
	if g.Amount > 0 {
		payload.Amount = &monetaryAmount{Type: "MonetaryAmount", Currency: "USD", Value: g.Amount}
	}
	return marshalJSONLD(payload)
}

// JobJSONLD builds the schema.org JobPosting payload for a job detail
// page.
func JobJSONLD(j *models.JobListing, canonicalURL string) template.JS {
	payload := jobPosting{
		Context: "https://schema.org",
		Type:    "JobPosting",
		Title:   j.Title,
		URL:     canonicalURL,
	}
	if j.Agency != "" {
		payload.HiringOrganization = &organization{Type: "Organization", Name: j.Agency}
	}
	if j.City != "" || j.StateCode != "" {
		loc := &jobLocation{Type: "Place"}
		loc.Address.Type = "PostalAddress"
		loc.Address.AddressLocality = j.City
		loc.Address.AddressRegion = j.StateCode
		loc.Address.AddressCountry = "US"
		payload.JobLocation = loc
	}
	return marshalJSONLD(payload)
}

func marshalJSONLD(v any) template.JS {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal JSON-LD: %v", err)
		return ""
	}
	return template.JS(data)
}
