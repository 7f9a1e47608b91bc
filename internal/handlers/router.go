package handlers

import "net/http"

// NewMux wires every route of the site and API onto a stdlib mux.
func NewMux(grants *GrantHandler, jobs *JobHandler, site *SitemapHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// HTML pages
	mux.HandleFunc("/", grants.HandleHome)
	mux.HandleFunc("/grants", grants.HandleGrantsIndex)
	mux.HandleFunc("/grants/federal/{slug}", grants.HandleGrantDetail)
	mux.HandleFunc("/grants/state/{state}/{slug}", grants.HandleGrantDetail)
	mux.HandleFunc("/grants/local/{state}/{city}/{slug}", grants.HandleGrantDetail)
	mux.HandleFunc("/grants/private/{slug}", grants.HandleGrantDetail)
	mux.HandleFunc("/jobs", jobs.HandleJobsIndex)
	mux.HandleFunc("/jobs/{slug}", jobs.HandleJobDetail)

	// SEO surfaces
	mux.HandleFunc("/sitemap.xml", site.HandleSitemap)
	mux.HandleFunc("/robots.txt", site.HandleRobots)

	// JSON API
	mux.HandleFunc("/api/grants", grants.HandleAPIGrants)
	mux.HandleFunc("/api/grants/{id}", grants.HandleAPIGrant)
	mux.HandleFunc("/api/jobs", jobs.HandleAPIJobs)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}
