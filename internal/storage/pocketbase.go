package storage

import (
	"fmt"
	"log"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	pbModels "github.com/pocketbase/pocketbase/models"
	"github.com/pocketbase/pocketbase/models/schema"

	"grantdir/internal/location"
	"grantdir/internal/models"
	"grantdir/internal/slug"
)

const (
	grantsCollection = "grants"
	jobsCollection   = "job_listings"
)

// Store wraps an embedded PocketBase instance holding the grant and job
// collections.
type Store struct {
	app *pocketbase.PocketBase
}

// NewStore bootstraps PocketBase against the given data directory and
// ensures the collections exist.
func NewStore(dataDir string) (*Store, error) {
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: dataDir,
	})

	if err := app.Bootstrap(); err != nil {
		return nil, fmt.Errorf("failed to bootstrap PocketBase: %w", err)
	}

	if err := ensureCollections(app); err != nil {
		return nil, fmt.Errorf("failed to ensure collections exist: %w", err)
	}

	return &Store{app: app}, nil
}

func ensureCollections(app *pocketbase.PocketBase) error {
	if _, err := app.Dao().FindCollectionByNameOrId(grantsCollection); err != nil {
		collection := &pbModels.Collection{
			Name: grantsCollection,
			Type: pbModels.CollectionTypeBase,
			Schema: schema.NewSchema(
				&schema.SchemaField{Name: "grant_uid", Type: schema.FieldTypeText, Required: true},
				&schema.SchemaField{Name: "title", Type: schema.FieldTypeText, Required: true},
				&schema.SchemaField{Name: "description", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "agency", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "category", Type: schema.FieldTypeText},
				&schema.SchemaField{
					Name:     "funding_type",
					Type:     schema.FieldTypeSelect,
					Required: true,
					Options: &schema.SelectOptions{
						MaxSelect: 1,
						Values:    []string{"government", "private"},
					},
				},
				&schema.SchemaField{Name: "state", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "city", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "amount", Type: schema.FieldTypeNumber},
				&schema.SchemaField{Name: "deadline", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "source_url", Type: schema.FieldTypeUrl},
				&schema.SchemaField{Name: "slug", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "short_id", Type: schema.FieldTypeText},
				&schema.SchemaField{
					Name:     "jurisdiction",
					Type:     schema.FieldTypeSelect,
					Required: true,
					Options: &schema.SelectOptions{
						MaxSelect: 1,
						Values:    []string{"federal", "state", "local", "private"},
					},
				},
				&schema.SchemaField{Name: "state_code", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "city_slug", Type: schema.FieldTypeText},
			),
		}
		if err := app.Dao().SaveCollection(collection); err != nil {
			return fmt.Errorf("failed to save grants collection: %w", err)
		}
		log.Printf("Created collection: %s", grantsCollection)
	}

	if _, err := app.Dao().FindCollectionByNameOrId(jobsCollection); err != nil {
		collection := &pbModels.Collection{
			Name: jobsCollection,
			Type: pbModels.CollectionTypeBase,
			Schema: schema.NewSchema(
				&schema.SchemaField{Name: "job_uid", Type: schema.FieldTypeText, Required: true},
				&schema.SchemaField{Name: "title", Type: schema.FieldTypeText, Required: true},
				&schema.SchemaField{Name: "agency", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "category", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "state", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "city", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "salary_range", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "apply_url", Type: schema.FieldTypeUrl},
				&schema.SchemaField{Name: "slug", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "short_id", Type: schema.FieldTypeText},
				&schema.SchemaField{Name: "state_code", Type: schema.FieldTypeText},
			),
		}
		if err := app.Dao().SaveCollection(collection); err != nil {
			return fmt.Errorf("failed to save job listings collection: %w", err)
		}
		log.Printf("Created collection: %s", jobsCollection)
	}

	return nil
}

// SaveGrant derives the jurisdiction and slug columns and upserts the
// record keyed by grant_uid. Saving the same grant twice yields the same
// slug and short id.
func (s *Store) SaveGrant(g *models.Grant) error {
	if err := g.Validate(); err != nil {
		return err
	}
	deriveGrant(g)

	record, err := s.app.Dao().FindFirstRecordByFilter(
		grantsCollection, "grant_uid = {:uid}", dbx.Params{"uid": g.UID})
	if err != nil {
		collection, err := s.app.Dao().FindCollectionByNameOrId(grantsCollection)
		if err != nil {
			return fmt.Errorf("failed to find collection: %w", err)
		}
		record = pbModels.NewRecord(collection)
	}

	applyGrant(record, g)
	if err := s.app.Dao().SaveRecord(record); err != nil {
		return fmt.Errorf("failed to save grant: %w", err)
	}
	g.ID = record.Id
	return nil
}

// deriveGrant fills the columns computed from the raw record fields.
func deriveGrant(g *models.Grant) {
	loc := location.ForGrant(g)
	g.Jurisdiction = string(loc.Kind)
	g.StateCode = loc.StateCode
	g.CitySlug = loc.CitySlug
	g.ShortID = slug.ShortID(g.UID)
	g.Slug = slug.Compose(slug.Slugify(g.Title), g.ShortID)
}

func applyGrant(record *pbModels.Record, g *models.Grant) {
	record.Set("grant_uid", g.UID)
	record.Set("title", g.Title)
	record.Set("description", g.Description)
	record.Set("agency", g.Agency)
	record.Set("category", g.Category)
	record.Set("funding_type", string(g.FundingType))
	record.Set("state", g.State)
	record.Set("city", g.City)
	record.Set("amount", g.Amount)
	record.Set("deadline", g.Deadline)
	record.Set("source_url", g.SourceURL)
	record.Set("slug", g.Slug)
	record.Set("short_id", g.ShortID)
	record.Set("jurisdiction", g.Jurisdiction)
	record.Set("state_code", g.StateCode)
	record.Set("city_slug", g.CitySlug)
}

func grantFromRecord(record *pbModels.Record) *models.Grant {
	return &models.Grant{
		ID:           record.Id,
		UID:          record.GetString("grant_uid"),
		Title:        record.GetString("title"),
		Description:  record.GetString("description"),
		Agency:       record.GetString("agency"),
		Category:     record.GetString("category"),
		FundingType:  models.FundingType(record.GetString("funding_type")),
		State:        record.GetString("state"),
		City:         record.GetString("city"),
		Amount:       record.GetFloat("amount"),
		Deadline:     record.GetString("deadline"),
		SourceURL:    record.GetString("source_url"),
		Slug:         record.GetString("slug"),
		ShortID:      record.GetString("short_id"),
		Jurisdiction: record.GetString("jurisdiction"),
		StateCode:    record.GetString("state_code"),
		CitySlug:     record.GetString("city_slug"),
	}
}

// GetGrant fetches a grant by its PocketBase record id.
func (s *Store) GetGrant(id string) (*models.Grant, error) {
	record, err := s.app.Dao().FindRecordById(grantsCollection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find grant: %w", err)
	}
	return grantFromRecord(record), nil
}

// GetGrantBySlug fetches a grant by its canonical slug.
func (s *Store) GetGrantBySlug(slugStr string) (*models.Grant, error) {
	record, err := s.app.Dao().FindFirstRecordByFilter(
		grantsCollection, "slug = {:slug}", dbx.Params{"slug": slugStr})
	if err != nil {
		return nil, fmt.Errorf("failed to find grant by slug: %w", err)
	}
	return grantFromRecord(record), nil
}

// GetGrantByShortID fetches a grant by the short id suffix of its slug.
// Used to resolve legacy URLs whose title portion has drifted.
func (s *Store) GetGrantByShortID(short string) (*models.Grant, error) {
	record, err := s.app.Dao().FindFirstRecordByFilter(
		grantsCollection, "short_id = {:short}", dbx.Params{"short": short})
	if err != nil {
		return nil, fmt.Errorf("failed to find grant by short id: %w", err)
	}
	return grantFromRecord(record), nil
}

// ListGrants returns one page of grants matching the filter plus the
// total match count.
func (s *Store) ListGrants(f models.GrantFilter) ([]models.Grant, int, error) {
	f.Normalize()

	exprs := []dbx.Expression{}
	if f.Jurisdiction != "" {
		exprs = append(exprs, dbx.HashExp{"jurisdiction": f.Jurisdiction})
	}
	if f.StateCode != "" {
		exprs = append(exprs, dbx.HashExp{"state_code": f.StateCode})
	}
	if f.CitySlug != "" {
		exprs = append(exprs, dbx.HashExp{"city_slug": f.CitySlug})
	}
	if f.Category != "" {
		exprs = append(exprs, dbx.HashExp{"category": f.Category})
	}
	if f.Agency != "" {
		exprs = append(exprs, dbx.HashExp{"agency": f.Agency})
	}
	if f.Query != "" {
		exprs = append(exprs, dbx.Or(
			dbx.Like("title", f.Query),
			dbx.Like("description", f.Query),
		))
	}

	countQuery := s.app.Dao().DB().Select("count(*)").From(grantsCollection)
	if len(exprs) > 0 {
		countQuery.Where(dbx.And(exprs...))
	}
	var total int
	if err := countQuery.Row(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count grants: %w", err)
	}

	query := s.app.Dao().DB().Select("*").From(grantsCollection).
		OrderBy("created DESC").
		Limit(int64(f.PerPage)).
		Offset(int64((f.Page - 1) * f.PerPage))
	if len(exprs) > 0 {
		query.Where(dbx.And(exprs...))
	}

	var grants []models.Grant
	if err := query.All(&grants); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch grants: %w", err)
	}
	return grants, total, nil
}

// DeleteGrant removes a grant by its PocketBase record id.
func (s *Store) DeleteGrant(id string) error {
	record, err := s.app.Dao().FindRecordById(grantsCollection, id)
	if err != nil {
		return fmt.Errorf("failed to find grant: %w", err)
	}
	if err := s.app.Dao().DeleteRecord(record); err != nil {
		return fmt.Errorf("failed to delete grant: %w", err)
	}
	return nil
}

// CountGrants returns the total number of stored grants.
func (s *Store) CountGrants() (int, error) {
	var total int
	err := s.app.Dao().DB().Select("count(*)").From(grantsCollection).Row(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count grants: %w", err)
	}
	return total, nil
}

// SaveJob derives the slug columns and upserts the listing keyed by
// job_uid.
func (s *Store) SaveJob(j *models.JobListing) error {
	if err := j.Validate(); err != nil {
		return err
	}
	j.ShortID = slug.ShortID(j.UID)
	j.Slug = slug.Compose(slug.Slugify(j.Title), j.ShortID)
	loc := location.Classify(j.State, j.City)
	j.StateCode = loc.StateCode

	record, err := s.app.Dao().FindFirstRecordByFilter(
		jobsCollection, "job_uid = {:uid}", dbx.Params{"uid": j.UID})
	if err != nil {
		collection, err := s.app.Dao().FindCollectionByNameOrId(jobsCollection)
		if err != nil {
			return fmt.Errorf("failed to find collection: %w", err)
		}
		record = pbModels.NewRecord(collection)
	}

	record.Set("job_uid", j.UID)
	record.Set("title", j.Title)
	record.Set("agency", j.Agency)
	record.Set("category", j.Category)
	record.Set("state", j.State)
	record.Set("city", j.City)
	record.Set("salary_range", j.SalaryRange)
	record.Set("apply_url", j.ApplyURL)
	record.Set("slug", j.Slug)
	record.Set("short_id", j.ShortID)
	record.Set("state_code", j.StateCode)

	if err := s.app.Dao().SaveRecord(record); err != nil {
		return fmt.Errorf("failed to save job listing: %w", err)
	}
	j.ID = record.Id
	return nil
}

func jobFromRecord(record *pbModels.Record) *models.JobListing {
	return &models.JobListing{
		ID:          record.Id,
		UID:         record.GetString("job_uid"),
		Title:       record.GetString("title"),
		Agency:      record.GetString("agency"),
		Category:    record.GetString("category"),
		State:       record.GetString("state"),
		City:        record.GetString("city"),
		SalaryRange: record.GetString("salary_range"),
		ApplyURL:    record.GetString("apply_url"),
		Slug:        record.GetString("slug"),
		ShortID:     record.GetString("short_id"),
		StateCode:   record.GetString("state_code"),
	}
}

// GetJobBySlug fetches a job listing by its canonical slug.
func (s *Store) GetJobBySlug(slugStr string) (*models.JobListing, error) {
	record, err := s.app.Dao().FindFirstRecordByFilter(
		jobsCollection, "slug = {:slug}", dbx.Params{"slug": slugStr})
	if err != nil {
		return nil, fmt.Errorf("failed to find job by slug: %w", err)
	}
	return jobFromRecord(record), nil
}

// GetJobByShortID fetches a job listing by the short id suffix of its slug.
func (s *Store) GetJobByShortID(short string) (*models.JobListing, error) {
	record, err := s.app.Dao().FindFirstRecordByFilter(
		jobsCollection, "short_id = {:short}", dbx.Params{"short": short})
	if err != nil {
		return nil, fmt.Errorf("failed to find job by short id: %w", err)
	}
	return jobFromRecord(record), nil
}

// ListJobs returns one page of job listings matching the filter plus the
// total match count.
func (s *Store) ListJobs(f models.JobFilter) ([]models.JobListing, int, error) {
	f.Normalize()

	exprs := []dbx.Expression{}
	if f.StateCode != "" {
		exprs = append(exprs, dbx.HashExp{"state_code": f.StateCode})
	}
	if f.Category != "" {
		exprs = append(exprs, dbx.HashExp{"category": f.Category})
	}
	if f.Query != "" {
		exprs = append(exprs, dbx.Like("title", f.Query))
	}

	countQuery := s.app.Dao().DB().Select("count(*)").From(jobsCollection)
	if len(exprs) > 0 {
		countQuery.Where(dbx.And(exprs...))
	}
	var total int
	if err := countQuery.Row(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count job listings: %w", err)
	}

	query := s.app.Dao().DB().Select("*").From(jobsCollection).
		OrderBy("created DESC").
		Limit(int64(f.PerPage)).
		Offset(int64((f.Page - 1) * f.PerPage))
	if len(exprs) > 0 {
		query.Where(dbx.And(exprs...))
	}

	var jobs []models.JobListing
	if err := query.All(&jobs); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch job listings: %w", err)
	}
	return jobs, total, nil
}

// DeleteJob removes a job listing by its PocketBase record id.
func (s *Store) DeleteJob(id string) error {
	record, err := s.app.Dao().FindRecordById(jobsCollection, id)
	if err != nil {
		return fmt.Errorf("failed to find job listing: %w", err)
	}
	if err := s.app.Dao().DeleteRecord(record); err != nil {
		return fmt.Errorf("failed to delete job listing: %w", err)
	}
	return nil
}

// GetPocketBase exposes the underlying app for ingest tooling.
func (s *Store) GetPocketBase() *pocketbase.PocketBase {
	return s.app
}
