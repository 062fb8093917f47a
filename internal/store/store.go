package store

import (
	"context"
	"errors"
	"sync"

	"github.com/nidhogg/memgraph/internal/graph"
)

// ErrNoGraph means no generation run has completed yet.
var ErrNoGraph = errors.New("no graph generated yet")

// Store holds the most recent generation result for the trigger surfaces
// to serve. Only the current graph is kept; there is no run history.
type Store interface {
	Put(ctx context.Context, g *graph.Graph) error
	Latest(ctx context.Context) (*graph.Graph, error)
}

// MemoryStore is the default in-process store.
type MemoryStore struct {
	mu     sync.RWMutex
	latest *graph.Graph
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Put replaces the stored graph.
func (s *MemoryStore) Put(ctx context.Context, g *graph.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = g
	return nil
}

// Latest returns the stored graph, or ErrNoGraph before the first run.
func (s *MemoryStore) Latest(ctx context.Context) (*graph.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, ErrNoGraph
	}
	return s.latest, nil
}
