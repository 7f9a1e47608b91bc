package models

import "fmt"

// FundingType represents who administers a funding opportunity
type FundingType string

const (
	FundingGovernment FundingType = "government"
	FundingPrivate    FundingType = "private"
)

// ValidateFundingType checks if the funding type is valid
func ValidateFundingType(ft FundingType) error {
	switch ft {
	case FundingGovernment, FundingPrivate:
		return nil
	default:
		return fmt.Errorf("invalid funding type: %s", ft)
	}
}

// Grant represents a single funding opportunity as ingested from an
// upstream source. State and City are free text exactly as published;
// the location package derives the jurisdiction from them.
type Grant struct {
	ID          string      `db:"id" json:"id,omitempty"`
	UID         string      `db:"grant_uid" json:"grant_uid"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description,omitempty"`
	Agency      string      `db:"agency" json:"agency,omitempty"`
	Category    string      `db:"category" json:"category,omitempty"`
	FundingType FundingType `db:"funding_type" json:"funding_type"`
	State       string      `db:"state" json:"state,omitempty"`
	City        string      `db:"city" json:"city,omitempty"`
	Amount      float64     `db:"amount" json:"amount,omitempty"`
	Deadline    string      `db:"deadline" json:"deadline,omitempty"`
	SourceURL   string      `db:"source_url" json:"source_url,omitempty"`

	// Derived at save time, never supplied by callers.
	Slug         string `db:"slug" json:"slug,omitempty"`
	ShortID      string `db:"short_id" json:"short_id,omitempty"`
	Jurisdiction string `db:"jurisdiction" json:"jurisdiction,omitempty"`
	StateCode    string `db:"state_code" json:"state_code,omitempty"`
	CitySlug     string `db:"city_slug" json:"city_slug,omitempty"`
}

// Validate ensures all required fields are present and valid
func (g *Grant) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("title is required")
	}
	if g.UID == "" {
		return fmt.Errorf("grant uid is required")
	}
	if g.FundingType == "" {
		g.FundingType = FundingGovernment
	}
	return ValidateFundingType(g.FundingType)
}
