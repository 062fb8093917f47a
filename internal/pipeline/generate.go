package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nidhogg/memgraph/internal/graph"
	"go.uber.org/zap"
)

const defaultWorkers = 8

// Generator drives one full scan -> parse -> resolve -> assemble run.
// A run is all-or-nothing: any fatal error aborts with no partial graph.
type Generator struct {
	scanner   *Scanner
	parser    *Parser
	resolver  *Resolver
	assembler *graph.Assembler
	workers   int
	logger    *zap.Logger
}

// NewGenerator creates a generator with a bounded parse worker pool.
func NewGenerator(workers int, logger *zap.Logger) *Generator {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Generator{
		scanner:   NewScanner(logger),
		parser:    NewParser(logger),
		resolver:  NewResolver(logger),
		assembler: graph.NewAssembler(logger),
		workers:   workers,
		logger:    logger,
	}
}

// Generate produces the graph for the entity tree rooted at root. It is
// idempotent: repeated calls against an unchanged tree yield graphs with
// identical node and edge sets, independent of enumeration order.
func (g *Generator) Generate(ctx context.Context, root string) (*graph.Graph, error) {
	start := time.Now()

	refs, err := g.scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	entities, err := g.parseAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	// Duplicate ids are caught here, before resolution, so the error can
	// name both offending paths.
	byID := make(map[string]string, len(entities))
	known := make(map[string]bool, len(entities))
	for _, e := range entities {
		if prev, ok := byID[e.ID]; ok {
			return nil, &graph.DuplicateIDError{ID: e.ID, Paths: []string{prev, e.Path}}
		}
		byID[e.ID] = e.Path
		known[e.ID] = true
	}

	// Barrier: the known-id set is complete and read-only from here on.
	var edges []graph.Edge
	diags := &graph.Diagnostics{}
	for _, e := range entities {
		resolved, unresolved := g.resolver.Resolve(e, known)
		edges = append(edges, resolved...)
		diags.Unresolved = append(diags.Unresolved, unresolved...)
	}

	result, err := g.assembler.Assemble(entities, edges, diags)
	if err != nil {
		return nil, err
	}

	g.logger.Info("generation complete",
		zap.String("root", root),
		zap.Int("nodes", result.Metadata.NodeCount),
		zap.Int("edges", result.Metadata.EdgeCount),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// parseAll parses every file through a bounded goroutine pool. The first
// failure cancels the rest; all workers are drained before returning so
// the resolver never sees a partially populated entity set.
func (g *Generator) parseAll(ctx context.Context, refs []FileRef) ([]graph.Entity, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := make(chan struct{}, g.workers)
	results := make([]graph.Entity, len(refs))
	errs := make([]error, len(refs))
	var wg sync.WaitGroup

	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref FileRef) {
			defer wg.Done()
			select {
			case pool <- struct{}{}: // acquire slot
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			defer func() { <-pool }() // release slot

			e, err := g.parser.ParseFile(ref)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			results[i] = e
		}(i, ref)
	}
	wg.Wait()

	// Prefer a real parse error over a cancellation error from a worker
	// that never ran.
	var firstCancel error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if firstCancel == nil {
				firstCancel = err
			}
			continue
		}
		return nil, err
	}
	if firstCancel != nil {
		return nil, firstCancel
	}
	return results, nil
}
