package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"grantdir/internal/models"
	"grantdir/internal/storage"
)

// CSVImporter loads grant records from a CSV feed, either a local file
// or a download URL. The header row names the columns; unknown columns
// are ignored.
type CSVImporter struct {
	store *storage.Store
}

// NewCSVImporter creates a new CSV importer
func NewCSVImporter(store *storage.Store) *CSVImporter {
	return &CSVImporter{store: store}
}

// Method returns the importer type
func (p *CSVImporter) Method() string {
	return "csv"
}

// Import fetches and stores the feed
func (p *CSVImporter) Import(ctx context.Context, source string) (int, error) {
	reader, closer, err := p.open(ctx, source)
	if err != nil {
		return 0, NewImportError("fetch", err)
	}
	defer closer()

	count, err := p.processRows(ctx, reader)
	if err != nil {
		return count, NewImportError("process", err)
	}
	return count, nil
}

func (p *CSVImporter) open(ctx context.Context, source string) (io.Reader, func(), error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open feed file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", source, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "grantdir-ingest/1.0")
	req.Header.Set("Accept", "text/csv, */*")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download feed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, func() { resp.Body.Close() }, nil
}

func (p *CSVImporter) processRows(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header row: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["title"]; !ok {
		return 0, fmt.Errorf("feed is missing a title column")
	}

	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Skipping malformed row: %v", err)
			continue
		}

		g := grantFromRow(cols, row)
		if g.UID == "" {
			g.UID = uuid.NewString()
		}
		if err := p.store.SaveGrant(g); err != nil {
			log.Printf("Skipping grant %q: %v", g.Title, err)
			continue
		}
		count++
	}
	return count, nil
}

func grantFromRow(cols map[string]int, row []string) *models.Grant {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	g := &models.Grant{
		UID:         field("id"),
		Title:       field("title"),
		Description: field("description"),
		Agency:      field("agency"),
		Category:    field("category"),
		FundingType: models.FundingType(strings.ToLower(field("funding_type"))),
		State:       field("state"),
		City:        field("city"),
		Amount:      parseAmount(field("amount")),
		Deadline:    field("deadline"),
		SourceURL:   field("url"),
	}
	if g.Category == "" {
		g.Category = InferCategory(g.Title, g.Description)
	}
	return g
}

// parseAmount tolerates currency formatting like "$1,500,000".
func parseAmount(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}

// categoryKeywords maps feed vocabulary to directory categories.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"education", []string{"education", "school", "student", "scholarship", "teacher"}},
	{"health", []string{"health", "medical", "hospital", "clinic", "mental"}},
	{"infrastructure", []string{"infrastructure", "transportation", "broadband", "water", "transit"}},
	{"housing", []string{"housing", "rental", "homeless", "shelter"}},
	{"agriculture", []string{"agriculture", "farm", "rural", "crop"}},
	{"research", []string{"research", "science", "innovation", "technology"}},
	{"arts", []string{"arts", "culture", "museum", "humanities"}},
}

// InferCategory guesses a category from title/description text when the
// feed leaves the column empty. Returns "community" when nothing matches.
func InferCategory(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, entry := range categoryKeywords {
		for _, word := range entry.words {
			if strings.Contains(text, word) {
				return entry.category
			}
		}
	}
	return "community"
}
