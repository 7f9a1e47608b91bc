package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"grantdir/internal/models"
	"grantdir/internal/storage"
)

// JSONImporter loads grant and job fixtures from a JSON file
type JSONImporter struct {
	store *storage.Store
}

// NewJSONImporter creates a new JSON importer
func NewJSONImporter(store *storage.Store) *JSONImporter {
	return &JSONImporter{store: store}
}

// Method returns the importer type
func (p *JSONImporter) Method() string {
	return "json"
}

// seedFile is the on-disk fixture layout
type seedFile struct {
	Grants []models.Grant      `json:"grants"`
	Jobs   []models.JobListing `json:"jobs"`
}

// Import reads the file and stores every record. Records without a uid
// get a generated UUID so the slug machinery always has an identifier
// to derive from.
func (p *JSONImporter) Import(ctx context.Context, source string) (int, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return 0, NewImportError("read", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return 0, NewImportError("decode", fmt.Errorf("invalid seed JSON: %w", err))
	}

	count := 0
	for i := range seed.Grants {
		if err := ctx.Err(); err != nil {
			return count, NewImportError("store", err)
		}
		g := &seed.Grants[i]
		if g.UID == "" {
			g.UID = uuid.NewString()
		}
		if err := p.store.SaveGrant(g); err != nil {
			log.Printf("Skipping grant %q: %v", g.Title, err)
			continue
		}
		count++
	}
	for i := range seed.Jobs {
		if err := ctx.Err(); err != nil {
			return count, NewImportError("store", err)
		}
		j := &seed.Jobs[i]
		if j.UID == "" {
			j.UID = uuid.NewString()
		}
		if err := p.store.SaveJob(j); err != nil {
			log.Printf("Skipping job %q: %v", j.Title, err)
			continue
		}
		count++
	}
	return count, nil
}
