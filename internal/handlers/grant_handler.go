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
	"grantdir/internal/slug"
)

// Store is the subset of the storage layer the handlers depend on.
type Store interface {
	ListGrants(f models.GrantFilter) ([]models.Grant, int, error)
	GetGrant(id string) (*models.Grant, error)
	GetGrantBySlug(slug string) (*models.Grant, error)
	GetGrantByShortID(short string) (*models.Grant, error)
	SaveGrant(g *models.Grant) error
	DeleteGrant(id string) error

	ListJobs(f models.JobFilter) ([]models.JobListing, int, error)
	GetJobBySlug(slug string) (*models.JobListing, error)
	GetJobByShortID(short string) (*models.JobListing, error)
	SaveJob(j *models.JobListing) error
	DeleteJob(id string) error
}

// directoryCategories is the fixed browse navigation; ingest maps feed
// vocabulary onto the same set.
var directoryCategories = []string{
	"education", "health", "infrastructure", "housing",
	"agriculture", "research", "arts", "community",
}

type GrantHandler struct {
	store    Store
	renderer *render.Renderer
}

func NewGrantHandler(store Store, renderer *render.Renderer) *GrantHandler {
	return &GrantHandler{
		store:    store,
		renderer: renderer,
	}
}

type homeData struct {
	Recent     []models.Grant
	States     []location.StateInfo
	Categories []string
}

func (h *GrantHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.renderer.NotFound(w, "This page does not exist.")
		return
	}

	recent, _, err := h.store.ListGrants(models.GrantFilter{PerPage: 10})
	if err != nil {
		log.Printf("Error fetching recent grants: %v", err)
	}

	h.renderer.HTML(w, http.StatusOK, "index", &render.Page{
		Title:       "Grant Directory — Government & Private Funding",
		Description: "Search and browse federal, state, local, and private funding opportunities.",
		Canonical:   h.renderer.AbsoluteURL("/"),
		Data: homeData{
			Recent:     recent,
			States:     location.States(),
			Categories: directoryCategories,
		},
	})
}

type grantListData struct {
	Heading    string
	Grants     []models.Grant
	Total      int
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
}

func (h *GrantHandler) HandleGrantsIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.GrantFilter{
		Jurisdiction: strings.ToLower(q.Get("jurisdiction")),
		Category:     strings.ToLower(q.Get("category")),
		Agency:       q.Get("agency"),
		Query:        q.Get("q"),
	}
	if raw := q.Get("state"); raw != "" {
		if info, ok := location.LookupState(raw); ok {
			filter.StateCode = info.Code
		} else {
			filter.StateCode = strings.ToUpper(strings.TrimSpace(raw))
		}
	}
	if city := q.Get("city"); city != "" {
		filter.CitySlug = slug.Slugify(city)
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Normalize()

	grants, total, err := h.store.ListGrants(filter)
	if err != nil {
		log.Printf("Error listing grants: %v", err)
		http.Error(w, "Error fetching grants", http.StatusInternalServerError)
		return
	}

	totalPages := (total + filter.PerPage - 1) / filter.PerPage
	data := grantListData{
		Heading:    grantListHeading(filter),
		Grants:     grants,
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

	h.renderer.HTML(w, http.StatusOK, "grants_list", &render.Page{
		Title:       data.Heading + " | Grant Directory",
		Description: "Browse " + strings.ToLower(data.Heading) + " with deadlines and award amounts.",
		Canonical:   h.renderer.AbsoluteURL(r.URL.Path),
		Data:        data,
	})
}

func grantListHeading(f models.GrantFilter) string {
	switch {
	case f.Query != "":
		return "Search Results for \"" + f.Query + "\""
	case f.CitySlug != "" && f.StateCode != "":
		return "Local Grants in " + stateDisplayName(f.StateCode)
	case f.StateCode != "":
		return "Grants in " + stateDisplayName(f.StateCode)
	case f.Jurisdiction == string(location.KindFederal):
		return "Federal Grants"
	case f.Jurisdiction == string(location.KindState):
		return "State Grants"
	case f.Jurisdiction == string(location.KindLocal):
		return "Local Grants"
	case f.Jurisdiction == string(location.KindPrivate):
		return "Private Grants"
	case f.Category != "":
		return titleCase(f.Category) + " Grants"
	case f.Agency != "":
		return "Grants from " + f.Agency
	default:
		return "All Grants"
	}
}

func stateDisplayName(code string) string {
	if info, ok := location.LookupState(code); ok {
		return info.Name
	}
	return code
}

// HandleGrantDetail serves all four canonical grant routes. The
// canonical path is recomputed from the stored record, so legacy slugs
// and wrong-jurisdiction paths 301 to the single authoritative URL.
func (h *GrantHandler) HandleGrantDetail(w http.ResponseWriter, r *http.Request) {
	slugStr := r.PathValue("slug")
	if slugStr == "" {
		h.renderer.NotFound(w, "This grant does not exist.")
		return
	}

	g, err := h.store.GetGrantBySlug(slugStr)
	if err != nil {
		// Title drift: the short id suffix still identifies the record.
		g, err = h.store.GetGrantByShortID(shortIDFromSlug(slugStr))
		if err != nil {
			h.renderer.NotFound(w, "This grant does not exist or has been removed.")
			return
		}
	}

	canonical := location.GrantPath(g)
	if r.URL.Path != canonical {
		http.Redirect(w, r, canonical, http.StatusMovedPermanently)
		return
	}

	absURL := h.renderer.AbsoluteURL(canonical)
	h.renderer.HTML(w, http.StatusOK, "grant_detail", &render.Page{
		Title:       g.Title + " | Grant Directory",
		Description: truncate(g.Description, 160),
		Canonical:   absURL,
		JSONLD:      render.GrantJSONLD(g, absURL),
		Data:        g,
	})
}

// HandleAPIGrants serves GET (filtered list) and POST (ingest) on
// /api/grants.
func (h *GrantHandler) HandleAPIGrants(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := models.GrantFilter{
			Jurisdiction: r.URL.Query().Get("jurisdiction"),
			StateCode:    strings.ToUpper(r.URL.Query().Get("state")),
			Category:     r.URL.Query().Get("category"),
			Query:        r.URL.Query().Get("q"),
		}
		filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
		grants, total, err := h.store.ListGrants(filter)
		if err != nil {
			http.Error(w, "Error fetching grants", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"grants": grants,
			"total":  total,
		})
	case http.MethodPost:
		var grant models.Grant
		if err := json.NewDecoder(r.Body).Decode(&grant); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := grant.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := h.store.SaveGrant(&grant); err != nil {
			http.Error(w, "Error saving grant", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{
			"id":   grant.ID,
			"path": location.GrantPath(&grant),
		})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleAPIGrant serves GET/PUT/DELETE on /api/grants/{id}.
func (h *GrantHandler) HandleAPIGrant(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		grant, err := h.store.GetGrant(id)
		if err != nil {
			http.Error(w, "Grant not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, grant)
	case http.MethodPut:
		existing, err := h.store.GetGrant(id)
		if err != nil {
			http.Error(w, "Grant not found", http.StatusNotFound)
			return
		}
		var grant models.Grant
		if err := json.NewDecoder(r.Body).Decode(&grant); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// The uid identifies the record across feeds; an update must not
		// move it, or the upsert would create a new record instead.
		if grant.UID != "" && grant.UID != existing.UID {
			http.Error(w, "Grant uid does not match the addressed record", http.StatusBadRequest)
			return
		}
		grant.UID = existing.UID
		grant.ID = existing.ID
		if err := grant.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := h.store.SaveGrant(&grant); err != nil {
			http.Error(w, "Error updating grant", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Grant updated successfully",
		})
	case http.MethodDelete:
		if err := h.store.DeleteGrant(id); err != nil {
			http.Error(w, "Error deleting grant", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Grant deleted successfully",
		})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
