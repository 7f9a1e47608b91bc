package handlers

import (
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
	"strings"

	"grantdir/internal/location"
	"grantdir/internal/models"
)

// sitemapLimit caps how many records the sitemap enumerates.
const sitemapLimit = 5000

type SitemapHandler struct {
	store   Store
	baseURL string
	limit   int
}

func NewSitemapHandler(store Store, baseURL string) *SitemapHandler {
	return &SitemapHandler{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		limit:   sitemapLimit,
	}
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// HandleSitemap emits every canonical URL the directory serves: the
// static listing pages plus one entry per grant and job.
func (h *SitemapHandler) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, path := range []string{"/", "/grants", "/jobs"} {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.baseURL + path, ChangeFreq: "daily"})
	}

	for page := 1; len(set.URLs) < h.limit; page++ {
		grants, total, err := h.store.ListGrants(models.GrantFilter{Page: page, PerPage: 100})
		if err != nil {
			log.Printf("Error building sitemap: %v", err)
			http.Error(w, "Error building sitemap", http.StatusInternalServerError)
			return
		}
		for i := range grants {
			if len(set.URLs) >= h.limit {
				break
			}
			set.URLs = append(set.URLs, sitemapURL{Loc: h.baseURL + location.GrantPath(&grants[i])})
		}
		if page*100 >= total || len(grants) == 0 {
			break
		}
	}

	for page := 1; len(set.URLs) < h.limit; page++ {
		jobs, total, err := h.store.ListJobs(models.JobFilter{Page: page, PerPage: 100})
		if err != nil {
			log.Printf("Error building sitemap: %v", err)
			http.Error(w, "Error building sitemap", http.StatusInternalServerError)
			return
		}
		for i := range jobs {
			if len(set.URLs) >= h.limit {
				break
			}
			set.URLs = append(set.URLs, sitemapURL{Loc: h.baseURL + location.JobPath(&jobs[i])})
		}
		if page*100 >= total || len(jobs) == 0 {
			break
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		log.Printf("Error encoding sitemap: %v", err)
	}
}

// HandleRobots points crawlers at the sitemap.
func (h *SitemapHandler) HandleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml\n", h.baseURL)
}
