// internal/ingest/ingest.go
package ingest

import (
	"context"
	"fmt"
)

// Importer defines the interface for different grant feed formats
type Importer interface {
	// Method returns the importer type (e.g., "json", "csv")
	Method() string

	// Import loads records from the given source (local path or URL)
	// and returns how many were stored
	Import(ctx context.Context, source string) (int, error)
}

// ImportError represents an ingest error with a specific stage
type ImportError struct {
	Stage string
	Err   error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import error at %s stage: %v", e.Stage, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError
func NewImportError(stage string, err error) *ImportError {
	return &ImportError{
		Stage: stage,
		Err:   err,
	}
}
