package pipeline

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nidhogg/memgraph/internal/graph"
	"go.uber.org/zap"
)

func TestScanGroupsByType(t *testing.T) {
	root := writeTree(t, map[string]string{
		"people/alice.md":    "# Alice",
		"people/bob.md":      "# Bob",
		"projects/widget.md": "# Widget",
		"concepts/flow.md":   "# Flow",
		"people/notes.txt":   "not an entity",
	})

	s := NewScanner(zap.NewNop())
	refs, err := s.Scan(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 4 {
		t.Fatalf("got %d refs, want 4", len(refs))
	}

	byType := make(map[graph.EntityType]int)
	for _, r := range refs {
		byType[r.Type]++
		if filepath.Ext(r.Path) != ".md" {
			t.Errorf("non-markdown file scanned: %s", r.Path)
		}
	}
	if byType[graph.TypePerson] != 2 || byType[graph.TypeProject] != 1 || byType[graph.TypeConcept] != 1 {
		t.Errorf("type counts = %v", byType)
	}
}

func TestScanSkipsUnrecognizedDirs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"people/alice.md": "# Alice",
		"scratch/junk.md": "not tracked",
	})

	refs, err := NewScanner(zap.NewNop()).Scan(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("got %d refs, want 1", len(refs))
	}
	if refs[0].Rel != "people/alice.md" {
		t.Errorf("got %q", refs[0].Rel)
	}
}

func TestScanEmptyTypeDirIsLegal(t *testing.T) {
	root := t.TempDir()
	if err := writeDir(root, "concepts"); err != nil {
		t.Fatal(err)
	}

	refs, err := NewScanner(zap.NewNop()).Scan(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("got %d refs, want 0", len(refs))
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := NewScanner(zap.NewNop()).Scan(filepath.Join(t.TempDir(), "nope"))
	var se *graph.ScanError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want ScanError", err)
	}
}
