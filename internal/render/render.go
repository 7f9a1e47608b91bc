// Package render executes the server-side HTML templates and builds the
// SEO metadata embedded in every page.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"grantdir/internal/location"
	"grantdir/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page is the envelope every template receives.
type Page struct {
	Title       string
	Description string
	// Canonical is the absolute canonical URL of the page, rendered as a
	// <link rel="canonical"> tag.
	Canonical string
	// JSONLD is a pre-marshaled schema.org payload, empty when a page
	// carries none.
	JSONLD template.JS
	Data   any
}

// Renderer executes the embedded templates against a public base URL.
type Renderer struct {
	tmpl    *template.Template
	baseURL string
}

// New parses the embedded templates. baseURL is the public origin used
// for canonical links, without a trailing slash.
func New(baseURL string) (*Renderer, error) {
	funcs := template.FuncMap{
		"upper":     strings.ToUpper,
		"fmtAmount": FormatAmount,
		"grantPath": func(g models.Grant) string { return location.GrantPath(&g) },
		"jobPath":   func(j models.JobListing) string { return location.JobPath(&j) },
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{
		tmpl:    tmpl,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// AbsoluteURL joins a relative path onto the public base URL.
func (r *Renderer) AbsoluteURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.baseURL + path
}

// HTML renders the named template. Render failures after the header is
// written can only be logged.
func (r *Renderer) HTML(w http.ResponseWriter, status int, name string, page *Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.tmpl.ExecuteTemplate(w, name, page); err != nil {
		log.Printf("Failed to render template %s: %v", name, err)
	}
}

// NotFound renders the shared 404 page.
func (r *Renderer) NotFound(w http.ResponseWriter, message string) {
	r.HTML(w, http.StatusNotFound, "error", &Page{
		Title: "Not Found",
		Data:  message,
	})
}

// FormatAmount renders a grant amount as whole dollars with thousands
// separators. Zero means the feed did not publish an amount.
func FormatAmount(amount float64) string {
	if amount <= 0 {
		return "Varies"
	}
	n := int64(amount)
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	b.WriteByte('$')
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
