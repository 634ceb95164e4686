package api

import (
	"context"
	"sort"
	"sync"

	"github.com/sysviz/sysviz/pkg/errors"
)

// Store persists computed diagrams. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save inserts or replaces a diagram by ID.
	Save(ctx context.Context, d *Diagram) error

	// Get returns the diagram with the given ID, or an error with code
	// ErrCodeDiagramNotFound.
	Get(ctx context.Context, id string) (*Diagram, error)

	// List returns summaries of all stored diagrams, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a diagram. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any underlying resources.
	Close(ctx context.Context) error
}

// =============================================================================
// MemoryStore
// =============================================================================

// MemoryStore is an in-process Store for single-node deployments and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	diagrams map[string]*Diagram
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diagrams: make(map[string]*Diagram)}
}

func (s *MemoryStore) Save(_ context.Context, d *Diagram) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagrams[d.ID] = d
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.diagrams[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeDiagramNotFound, "diagram not found: %s", id)
	}
	return d, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.diagrams))
	for _, d := range s.diagrams {
		out = append(out, d.Summarize())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.diagrams, id)
	return nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }
