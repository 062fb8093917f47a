package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTree lays out a temp entity tree from rel-path -> content.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return root
}

func writeDir(root, rel string) error {
	return os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755)
}
