package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nidhogg/memgraph/internal/graph"
)

func sampleGraph(runID string) *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Entity{
			{ID: "people/alice", Label: "Alice", Type: graph.TypePerson, Path: "people/alice.md"},
		},
		Metadata: graph.Metadata{
			NodeCount:   1,
			TypeCounts:  map[string]int{"person": 1},
			GeneratedAt: time.Now().UTC(),
			RunID:       runID,
		},
	}
}

func TestMemoryStoreEmpty(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Latest(context.Background())
	if !errors.Is(err, ErrNoGraph) {
		t.Fatalf("got %v, want ErrNoGraph", err)
	}
}

func TestMemoryStorePutLatest(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, sampleGraph("run-1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, sampleGraph("run-2")); err != nil {
		t.Fatal(err)
	}

	g, err := s.Latest(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Metadata.RunID != "run-2" {
		t.Errorf("got run %q, want run-2", g.Metadata.RunID)
	}
}
