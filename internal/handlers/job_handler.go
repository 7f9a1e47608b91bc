package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"grantdir/internal/location"
	"grantdir/internal/models"
	"grantdir/internal/render"
)

type JobHandler struct {
	store    Store
	renderer *render.Renderer
}

func NewJobHandler(store Store, renderer *render.Renderer) *JobHandler {
	return &JobHandler{
		store:    store,
		renderer: renderer,
	}
}

type jobListData struct {
	Heading    string
	Jobs       []models.JobListing
	Total      int
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
}

func (h *JobHandler) HandleJobsIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.JobFilter{
		Category: strings.ToLower(q.Get("category")),
		Query:    q.Get("q"),
	}
	if raw := q.Get("state"); raw != "" {
		if info, ok := location.LookupState(raw); ok {
			filter.StateCode = info.Code
		} else {
			filter.StateCode = strings.ToUpper(strings.TrimSpace(raw))
		}
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Normalize()

	jobs, total, err := h.store.ListJobs(filter)
	if err != nil {
		log.Printf("Error listing jobs: %v", err)
		http.Error(w, "Error fetching job listings", http.StatusInternalServerError)
		return
	}

	totalPages := (total + filter.PerPage - 1) / filter.PerPage
	heading := "Grant & Program Jobs"
	if filter.StateCode != "" {
		heading = "Grant & Program Jobs in " + stateDisplayName(filter.StateCode)
	}
	data := jobListData{
		Heading:    heading,
		Jobs:       jobs,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages,
	}
	if filter.Page > 1 {
		data.PrevURL = pageURL(r, filter.Page-1)
	}
	if filter.Page < totalPages {
		data.NextURL = pageURL(r, filter.Page+1)
	}

	h.renderer.HTML(w, http.StatusOK, "jobs_list", &render.Page{
		Title:       heading + " | Grant Directory",
		Description: "Job openings in grant administration and funded programs.",
		Canonical:   h.renderer.AbsoluteURL(r.URL.Path),
		Data:        data,
	})
}

// HandleJobDetail mirrors the grant detail flow: resolve by slug, fall
// back to the short id, 301 to the canonical path on mismatch.
func (h *JobHandler) HandleJobDetail(w http.ResponseWriter, r *http.Request) {
	slugStr := r.PathValue("slug")
	if slugStr == "" {
		h.renderer.NotFound(w, "This job listing does not exist.")
		return
	}

	j, err := h.store.GetJobBySlug(slugStr)
	if err != nil {
		j, err = h.store.GetJobByShortID(shortIDFromSlug(slugStr))
		if err != nil {
			h.renderer.NotFound(w, "This job listing does not exist or has been filled.")
			return
		}
	}

	canonical := location.JobPath(j)
	if r.URL.Path != canonical {
		http.Redirect(w, r, canonical, http.StatusMovedPermanently)
		return
	}

	absURL := h.renderer.AbsoluteURL(canonical)
	h.renderer.HTML(w, http.StatusOK, "job_detail", &render.Page{
		Title:     j.Title + " | Grant Directory Jobs",
		Canonical: absURL,
		JSONLD:    render.JobJSONLD(j, absURL),
		Data:      j,
	})
}

// HandleAPIJobs serves GET (filtered list) and POST (ingest) on
// /api/jobs.
func (h *JobHandler) HandleAPIJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := models.JobFilter{
			StateCode: strings.ToUpper(r.URL.Query().Get("state")),
			Category:  r.URL.Query().Get("category"),
			Query:     r.URL.Query().Get("q"),
		}
		filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
		jobs, total, err := h.store.ListJobs(filter)
		if err != nil {
			http.Error(w, "Error fetching job listings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"jobs":  jobs,
			"total": total,
		})
	case http.MethodPost:
		var job models.JobListing
		if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := job.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := h.store.SaveJob(&job); err != nil {
			http.Error(w, "Error saving job listing", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{
			"id":   job.ID,
			"path": location.JobPath(&job),
		})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
