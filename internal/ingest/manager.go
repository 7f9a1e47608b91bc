package ingest

import (
	"context"
	"fmt"
	"log"

	"grantdir/internal/storage"
)

// Manager routes ingest requests to the importer for a feed format
type Manager struct {
	importers map[string]Importer
}

// NewManager creates a manager with the built-in importers registered
func NewManager(store *storage.Store) *Manager {
	m := &Manager{
		importers: make(map[string]Importer),
	}
	m.Register(NewJSONImporter(store))
	m.Register(NewCSVImporter(store))
	return m
}

// Register adds an importer, keyed by its method
func (m *Manager) Register(imp Importer) {
	m.importers[imp.Method()] = imp
}

// Import runs the importer registered for the given method
func (m *Manager) Import(ctx context.Context, method, source string) (int, error) {
	imp, ok := m.importers[method]
	if !ok {
		return 0, fmt.Errorf("no importer registered for method: %s", method)
	}
	log.Printf("Importing %s feed from %s", method, source)
	count, err := imp.Import(ctx, source)
	if err != nil {
		return count, err
	}
	log.Printf("Imported %d records from %s", count, source)
	return count, nil
}

// Methods lists the registered feed formats
func (m *Manager) Methods() []string {
	methods := make([]string, 0, len(m.importers))
	for method := range m.importers {
		methods = append(methods, method)
	}
	return methods
}
