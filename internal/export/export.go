package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nidhogg/memgraph/internal/graph"
	"go.uber.org/zap"
)

// Sink receives the completed graph of one generation run.
type Sink interface {
	Name() string
	Export(ctx context.Context, g *graph.Graph) error
}

// FileSink writes the serialized graph document to disk. This is the
// primary artifact the rendering layer consumes.
type FileSink struct {
	path   string
	logger *zap.Logger
}

// NewFileSink creates a file sink targeting path.
func NewFileSink(path string, logger *zap.Logger) *FileSink {
	return &FileSink{path: path, logger: logger}
}

func (s *FileSink) Name() string { return "file" }

// Export marshals the graph and writes it atomically: a consumer reading
// the artifact mid-run sees either the previous document or the new one,
// never a truncated write.
func (s *FileSink) Export(ctx context.Context, g *graph.Graph) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".graph-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename to %s: %w", s.path, err)
	}

	s.logger.Info("graph written",
		zap.String("path", s.path),
		zap.Int("nodes", g.Metadata.NodeCount),
		zap.Int("edges", g.Metadata.EdgeCount))
	return nil
}

// ExportAll runs every sink in order, stopping at the first failure.
func ExportAll(ctx context.Context, sinks []Sink, g *graph.Graph) error {
	for _, s := range sinks {
		if err := s.Export(ctx, g); err != nil {
			return fmt.Errorf("sink %s: %w", s.Name(), err)
		}
	}
	return nil
}
