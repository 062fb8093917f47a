package schedule

import (
	"context"
	"sync"

	"github.com/nidhogg/memgraph/internal/export"
	"github.com/nidhogg/memgraph/internal/graph"
	"github.com/nidhogg/memgraph/internal/pipeline"
	"github.com/nidhogg/memgraph/internal/store"
	"go.uber.org/zap"
)

// Runner funnels every trigger surface (HTTP, ticker, watcher, CLI)
// through one place: generate, store the result, export it. Concurrent
// triggers are serialized so at most one run is in flight.
type Runner struct {
	root   string
	gen    *pipeline.Generator
	store  store.Store
	sinks  []export.Sink
	mu     sync.Mutex
	logger *zap.Logger
}

// NewRunner creates a runner for the entity tree at root.
func NewRunner(root string, gen *pipeline.Generator, st store.Store, sinks []export.Sink, logger *zap.Logger) *Runner {
	return &Runner{
		root:   root,
		gen:    gen,
		store:  st,
		sinks:  sinks,
		logger: logger,
	}
}

// Run executes one full generation. On failure nothing is stored or
// exported; the previous graph remains served.
func (r *Runner) Run(ctx context.Context) (*graph.Graph, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.gen.Generate(ctx, r.root)
	if err != nil {
		r.logger.Error("generation failed", zap.String("root", r.root), zap.Error(err))
		return nil, err
	}
	if err := r.store.Put(ctx, g); err != nil {
		return nil, err
	}
	if err := export.ExportAll(ctx, r.sinks, g); err != nil {
		return nil, err
	}
	return g, nil
}
