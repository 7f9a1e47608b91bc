package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantdir/internal/location"
	"grantdir/internal/models"
	"grantdir/internal/render"
	"grantdir/internal/slug"
)

// fakeStore is an in-memory Store for handler tests, deriving the same
// columns the real store derives at save time.
type fakeStore struct {
	grants []models.Grant
	jobs   []models.JobListing
}

func (s *fakeStore) SaveGrant(g *models.Grant) error {
	if err := g.Validate(); err != nil {
		return err
	}
	loc := location.ForGrant(g)
	g.Jurisdiction = string(loc.Kind)
	g.StateCode = loc.StateCode
	g.CitySlug = loc.CitySlug
	g.ShortID = slug.ShortID(g.UID)
	g.Slug = slug.Compose(slug.Slugify(g.Title), g.ShortID)
	for i := range s.grants {
		if s.grants[i].UID == g.UID {
			g.ID = s.grants[i].ID
			s.grants[i] = *g
			return nil
		}
	}
	g.ID = fmt.Sprintf("rec%03d", len(s.grants)+1)
	s.grants = append(s.grants, *g)
	return nil
}

func (s *fakeStore) ListGrants(f models.GrantFilter) ([]models.Grant, int, error) {
	f.Normalize()
	var matched []models.Grant
	for _, g := range s.grants {
		if f.Jurisdiction != "" && g.Jurisdiction != f.Jurisdiction {
			continue
		}
		if f.StateCode != "" && g.StateCode != f.StateCode {
			continue
		}
		if f.CitySlug != "" && g.CitySlug != f.CitySlug {
			continue
		}
		if f.Category != "" && g.Category != f.Category {
			continue
		}
		if f.Agency != "" && g.Agency != f.Agency {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(g.Title+g.Description), strings.ToLower(f.Query)) {
			continue
		}
		matched = append(matched, g)
	}
	total := len(matched)
	start := (f.Page - 1) * f.PerPage
	if start >= total {
		return nil, total, nil
	}
	end := start + f.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *fakeStore) GetGrant(id string) (*models.Grant, error) {
	for i := range s.grants {
		if s.grants[i].ID == id {
			g := s.grants[i]
			return &g, nil
		}
	}
	return nil, fmt.Errorf("grant not found")
}

func (s *fakeStore) GetGrantBySlug(slugStr string) (*models.Grant, error) {
	for i := range s.grants {
		if s.grants[i].Slug == slugStr {
			g := s.grants[i]
			return &g, nil
		}
	}
	return nil, fmt.Errorf("grant not found")
}

func (s *fakeStore) GetGrantByShortID(short string) (*models.Grant, error) {
	for i := range s.grants {
		if s.grants[i].ShortID == short {
			g := s.grants[i]
			return &g, nil
		}
	}
	return nil, fmt.Errorf("grant not found")
}

func (s *fakeStore) DeleteGrant(id string) error {
	for i := range s.grants {
		if s.grants[i].ID == id {
			s.grants = append(s.grants[:i], s.grants[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("grant not found")
}

func (s *fakeStore) SaveJob(j *models.JobListing) error {
	if err := j.Validate(); err != nil {
		return err
	}
	j.ShortID = slug.ShortID(j.UID)
	j.Slug = slug.Compose(slug.Slugify(j.Title), j.ShortID)
	j.StateCode = location.Classify(j.State, j.City).StateCode
	j.ID = fmt.Sprintf("job%03d", len(s.jobs)+1)
	s.jobs = append(s.jobs, *j)
	return nil
}

func (s *fakeStore) ListJobs(f models.JobFilter) ([]models.JobListing, int, error) {
	f.Normalize()
	var matched []models.JobListing
	for _, j := range s.jobs {
		if f.StateCode != "" && j.StateCode != f.StateCode {
			continue
		}
		if f.Category != "" && j.Category != f.Category {
			continue
		}
		matched = append(matched, j)
	}
	return matched, len(matched), nil
}

func (s *fakeStore) GetJobBySlug(slugStr string) (*models.JobListing, error) {
	for i := range s.jobs {
		if s.jobs[i].Slug == slugStr {
			j := s.jobs[i]
			return &j, nil
		}
	}
	return nil, fmt.Errorf("job not found")
}

func (s *fakeStore) GetJobByShortID(short string) (*models.JobListing, error) {
	for i := range s.jobs {
		if s.jobs[i].ShortID == short {
			j := s.jobs[i]
			return &j, nil
		}
	}
	return nil, fmt.Errorf("job not found")
}

func (s *fakeStore) DeleteJob(id string) error {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("job not found")
}

func newTestMux(t *testing.T, store Store) *http.ServeMux {
	t.Helper()
	renderer, err := render.New("http://example.test")
	require.NoError(t, err)
	return NewMux(
		NewGrantHandler(store, renderer),
		NewJobHandler(store, renderer),
		NewSitemapHandler(store, "http://example.test"),
	)
}

func seededStore(t *testing.T) *fakeStore {
	t.Helper()
	store := &fakeStore{}
	require.NoError(t, store.SaveGrant(&models.Grant{
		UID:      "abc-123",
		Title:    "Clean Water Grant",
		Agency:   "EPA",
		Category: "infrastructure",
		State:    "CA",
		City:     "Sacramento",
		Amount:   250000,
	}))
	require.NoError(t, store.SaveGrant(&models.Grant{
		UID:   "def-456",
		Title: "Rural Broadband Fund",
		State: "Federal",
	}))
	require.NoError(t, store.SaveJob(&models.JobListing{
		UID:    "job-789",
		Title:  "Grants Program Manager",
		Agency: "State of California",
		State:  "CA",
		City:   "Sacramento",
	}))
	return store
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGrantDetailCanonical(t *testing.T) {
	mux := newTestMux(t, seededStore(t))

	rec := get(mux, "/grants/local/CA/sacramento/clean-water-grant-abc")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Clean Water Grant")
	assert.Contains(t, rec.Body.String(), `rel="canonical"`)
	assert.Contains(t, rec.Body.String(), "application/ld+json")
}

func TestGrantDetailLegacyRedirect(t *testing.T) {
	mux := newTestMux(t, seededStore(t))

	t.Run("wrong jurisdiction path redirects permanently", func(t *testing.T) {
		rec := get(mux, "/grants/federal/clean-water-grant-abc")
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/grants/local/CA/sacramento/clean-water-grant-abc", rec.Header().Get("Location"))
	})

	t.Run("drifted title slug redirects via short id", func(t *testing.T) {
		rec := get(mux, "/grants/local/CA/sacramento/old-grant-name-abc")
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/grants/local/CA/sacramento/clean-water-grant-abc", rec.Header().Get("Location"))
	})

	t.Run("canonical path does not redirect", func(t *testing.T) {
		rec := get(mux, "/grants/federal/rural-broadband-fund-def")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGrantDetailNotFound(t *testing.T) {
	mux := newTestMux(t, seededStore(t))

	rec := get(mux, "/grants/federal/no-such-grant-zzz")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGrantsIndex(t *testing.T) {
	mux := newTestMux(t, seededStore(t))

	t.Run("lists all grants", func(t *testing.T) {
		rec := get(mux, "/grants")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Clean Water Grant")
		assert.Contains(t, rec.Body.String(), "Rural Broadband Fund")
	})

	t.Run("jurisdiction filter narrows results", func(t *testing.T) {
		rec := get(mux, "/grants?jurisdiction=federal")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Clean Water Grant")
		assert.Contains(t, rec.Body.String(), "Rural Broadband Fund")
	})

	t.Run("state filter accepts full names", func(t *testing.T) {
		rec := get(mux, "/grants?state=California")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Clean Water Grant")
		assert.NotContains(t, rec.Body.String(), "Rural Broadband Fund")
	})
}

func TestHome(t *testing.T) {
	mux := newTestMux(t, seededStore(t))

	rec := get(mux, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Browse by State")
}

func TestJobDetailRedirect(t *testing.T) {
	mux := newTestMux(t, seededStore(t))

	rec := get(mux, "/jobs/grants-program-manager-job")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Grants Program Manager")

	rec = get(mux, "/jobs/old-job-title-job")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/jobs/grants-program-manager-job", rec.Header().Get("Location"))
}

func TestSitemap(t *testing.T) {
	mux := newTestMux(t, seededStore(t))

	rec := get(mux, "/sitemap.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<urlset")
	assert.Contains(t, body, "http://example.test/grants/local/CA/sacramento/clean-water-grant-abc")
	assert.Contains(t, body, "http://example.test/jobs/grants-program-manager-job")
}

func TestRobots(t *testing.T) {
	mux := newTestMux(t, seededStore(t))

	rec := get(mux, "/robots.txt")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: http://example.test/sitemap.xml")
}

func TestAPIGrants(t *testing.T) {
	mux := newTestMux(t, seededStore(t))

	t.Run("list", func(t *testing.T) {
		rec := get(mux, "/api/grants")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":2`)
	})

	t.Run("create returns the canonical path", func(t *testing.T) {
		body := strings.NewReader(`{"grant_uid":"xyz-999","title":"Arts & Culture Fund","funding_type":"private"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/grants", body))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "/grants/private/arts-and-culture-fund-xyz")
	})

	t.Run("invalid payload is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/grants", strings.NewReader(`{"title":""}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAPIGrantUpdate(t *testing.T) {
	t.Run("update targets the record addressed by the path", func(t *testing.T) {
		store := seededStore(t)
		mux := newTestMux(t, store)

		body := strings.NewReader(`{"title":"Clean Water Grant (Expanded)","agency":"EPA","state":"CA","city":"Sacramento"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/grants/rec001", body))
		require.Equal(t, http.StatusOK, rec.Code)

		g, err := store.GetGrant("rec001")
		require.NoError(t, err)
		assert.Equal(t, "Clean Water Grant (Expanded)", g.Title)
		assert.Equal(t, "abc-123", g.UID)
		assert.Len(t, store.grants, 2, "an update must not create a new record")
	})

	t.Run("mismatched uid in the body is rejected", func(t *testing.T) {
		store := seededStore(t)
		mux := newTestMux(t, store)

		body := strings.NewReader(`{"grant_uid":"other-777","title":"Renamed Grant"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/grants/rec001", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		g, err := store.GetGrant("rec001")
		require.NoError(t, err)
		assert.Equal(t, "Clean Water Grant", g.Title)
		assert.Len(t, store.grants, 2)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		mux := newTestMux(t, seededStore(t))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/grants/rec999", strings.NewReader(`{"title":"Anything"}`)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSitemapEntryCap(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 25; i++ {
		require.NoError(t, store.SaveGrant(&models.Grant{
			UID:   fmt.Sprintf("grant-%03d", i),
			Title: fmt.Sprintf("Grant %d", i),
			State: "Federal",
		}))
	}
	site := &SitemapHandler{store: store, baseURL: "http://example.test", limit: 10}

	rec := httptest.NewRecorder()
	site.HandleSitemap(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, strings.Count(rec.Body.String(), "<loc>"))
}

func TestHealth(t *testing.T) {
	mux := newTestMux(t, seededStore(t))

	rec := get(mux, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
