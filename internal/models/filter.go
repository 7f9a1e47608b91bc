package models

// DefaultPerPage is the page size used when a filter does not set one.
const DefaultPerPage = 20

// GrantFilter narrows a grant listing query. Zero values mean "no
// constraint" for that field.
type GrantFilter struct {
	Jurisdiction string // federal, state, local, private
	StateCode    string
	CitySlug     string
	Category     string
	Agency       string
	Query        string // free-text match against title/description
	Page         int    // 1-based
	PerPage      int
}

// Normalize clamps pagination to sane values.
func (f *GrantFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = DefaultPerPage
	}
}

// JobFilter narrows a job listing query.
type JobFilter struct {
	StateCode string
	Category  string
	Query     string
	Page      int
	PerPage   int
}

// Normalize clamps pagination to sane values.
func (f *JobFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = DefaultPerPage
	}
}
