package models

import "fmt"

// JobListing represents a grant-administration or program job posting
// published alongside the funding opportunities.
type JobListing struct {
	ID          string `db:"id" json:"id,omitempty"`
	UID         string `db:"job_uid" json:"job_uid"`
	Title       string `db:"title" json:"title"`
	Agency      string `db:"agency" json:"agency,omitempty"`
	Category    string `db:"category" json:"category,omitempty"`
	State       string `db:"state" json:"state,omitempty"`
	City        string `db:"city" json:"city,omitempty"`
	SalaryRange string `db:"salary_range" json:"salary_range,omitempty"`
	ApplyURL    string `db:"apply_url" json:"apply_url,omitempty"`

	Slug      string `db:"slug" json:"slug,omitempty"`
	ShortID   string `db:"short_id" json:"short_id,omitempty"`
	StateCode string `db:"state_code" json:"state_code,omitempty"`
}

// Validate ensures all required fields are present
func (j *JobListing) Validate() error {
	if j.Title == "" {
		return fmt.Errorf("title is required")
	}
	if j.UID == "" {
		return fmt.Errorf("job uid is required")
	}
	return nil
}
