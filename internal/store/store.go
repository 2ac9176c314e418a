// Package store persists the chemical catalog. Two backends share one
// interface: an embedded SQLite file for single-machine classroom use
// and Postgres for shared deployments.
package store

import (
	"context"
	"errors"

	"github.com/daniacca/chemlab/internal/chemlab"
)

// ErrNotFound is returned when a chemical is not in the store.
var ErrNotFound = errors.New("chemical not found")

var errEmptyName = errors.New("chemical name cannot be empty")

// Store is the persistence contract for the chemical catalog.
type Store interface {
	// AddChemical inserts or updates a chemical keyed by normalized name.
	AddChemical(ctx context.Context, rec chemlab.ChemicalRecord) error

	// GetChemical looks up a chemical by name (case-insensitive).
	GetChemical(ctx context.Context, name string) (chemlab.ChemicalRecord, error)

	// ListChemicals returns every chemical, ordered by name.
	ListChemicals(ctx context.Context) ([]chemlab.ChemicalRecord, error)

	// Count returns the number of stored chemicals.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying database handle.
	Close() error
}

// LoadCatalog hydrates an in-memory catalog from the store. The engine
// works against the catalog only, so a store round-trip happens once at
// startup and after admin writes.
func LoadCatalog(ctx context.Context, st Store) (*chemlab.MemoryCatalog, error) {
	recs, err := st.ListChemicals(ctx)
	if err != nil {
		return nil, err
	}
	return chemlab.NewMemoryCatalog(recs), nil
}
