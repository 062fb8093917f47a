package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nidhogg/memgraph/internal/graph"
	"go.uber.org/zap"
)

// FileRef is one entity file discovered under a recognized type directory.
type FileRef struct {
	Type graph.EntityType
	Path string // absolute or root-relative, as given
	Rel  string // path relative to the memory root, e.g. "concepts/foo.md"
}

// Scanner enumerates entity files grouped by declared type.
type Scanner struct {
	logger *zap.Logger
}

// NewScanner creates a scanner.
func NewScanner(logger *zap.Logger) *Scanner {
	return &Scanner{logger: logger}
}

// Scan walks the immediate subdirectories of root. Subdirectories that do
// not name a recognized entity type are skipped, not errors. Enumeration
// order is not guaranteed; nothing downstream may depend on it.
func (s *Scanner) Scan(root string) ([]FileRef, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &graph.ScanError{Root: root, Err: err}
	}

	var refs []FileRef
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		t, ok := graph.TypeForDir(entry.Name())
		if !ok {
			s.logger.Debug("skipping unrecognized directory", zap.String("dir", entry.Name()))
			continue
		}

		dir := filepath.Join(root, entry.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, &graph.ScanError{Root: dir, Err: err}
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
				continue
			}
			refs = append(refs, FileRef{
				Type: t,
				Path: filepath.Join(dir, f.Name()),
				Rel:  filepath.ToSlash(filepath.Join(entry.Name(), f.Name())),
			})
		}
	}

	s.logger.Info("scan complete", zap.String("root", root), zap.Int("files", len(refs)))
	return refs, nil
}
