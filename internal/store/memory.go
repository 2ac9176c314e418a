package store

import (
	"context"
	"sort"
	"sync"

	"github.com/daniacca/chemlab/internal/chemlab"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the catalog in process memory. Used when no
// database is configured and in tests.
type MemoryStore struct {
	mu        sync.RWMutex
	chemicals map[string]chemlab.ChemicalRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{chemicals: make(map[string]chemlab.ChemicalRecord)}
}

// AddChemical inserts or updates a chemical keyed by normalized name.
func (s *MemoryStore) AddChemical(_ context.Context, rec chemlab.ChemicalRecord) error {
	if rec.Name == "" {
		return errEmptyName
	}
	s.mu.Lock()
	s.chemicals[chemlab.NormalizeName(rec.Name)] = rec
	s.mu.Unlock()
	return nil
}

// GetChemical looks up a chemical by name.
func (s *MemoryStore) GetChemical(_ context.Context, name string) (chemlab.ChemicalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.chemicals[chemlab.NormalizeName(name)]
	if !ok {
		return chemlab.ChemicalRecord{}, ErrNotFound
	}
	return rec, nil
}

// ListChemicals returns every chemical, ordered by name.
func (s *MemoryStore) ListChemicals(_ context.Context) ([]chemlab.ChemicalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.chemicals))
	for k := range s.chemicals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]chemlab.ChemicalRecord, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.chemicals[k])
	}
	return out, nil
}

// Count returns the number of stored chemicals.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chemicals), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
