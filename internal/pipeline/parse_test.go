package pipeline

import (
	"errors"
	"testing"

	"github.com/nidhogg/memgraph/internal/graph"
	"go.uber.org/zap"
)

func parseOne(t *testing.T, typ graph.EntityType, stem, content string) graph.Entity {
	t.Helper()
	ref := FileRef{
		Type: typ,
		Path: typ.Dir() + "/" + stem + ".md",
		Rel:  typ.Dir() + "/" + stem + ".md",
	}
	e, err := NewParser(zap.NewNop()).Parse(ref, []byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return e
}

func TestParseLabelFromHeading(t *testing.T) {
	e := parseOne(t, graph.TypeConcept, "archaeological_engineering",
		"# Archaeological Engineering\n\nDigging through legacy systems.")
	if e.Label != "Archaeological Engineering" {
		t.Errorf("label = %q", e.Label)
	}
	if e.ID != "concepts/archaeological_engineering" {
		t.Errorf("id = %q", e.ID)
	}
	if e.Path != "concepts/archaeological_engineering.md" {
		t.Errorf("path = %q", e.Path)
	}
	if e.Color != graph.TypeConcept.Color() {
		t.Errorf("color = %q", e.Color)
	}
}

func TestParseLabelFromFilename(t *testing.T) {
	e := parseOne(t, graph.TypePerson, "alice_the-great", "Just some notes, no heading.")
	if e.Label != "Alice The Great" {
		t.Errorf("label = %q", e.Label)
	}
}

func TestParseHeadingMustComeFirst(t *testing.T) {
	// The first non-empty line is not a heading, so the filename wins.
	e := parseOne(t, graph.TypePerson, "bob_smith", "intro line\n# Robert Smith\n")
	if e.Label != "Bob Smith" {
		t.Errorf("label = %q, want %q", e.Label, "Bob Smith")
	}
}

func TestParseEmptyFileFails(t *testing.T) {
	ref := FileRef{Type: graph.TypePerson, Path: "people/empty.md", Rel: "people/empty.md"}
	_, err := NewParser(zap.NewNop()).Parse(ref, []byte("  \n\t\n"))
	var pe *graph.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want ParseError", err)
	}
	if pe.Path != "people/empty.md" {
		t.Errorf("error path = %q", pe.Path)
	}
}

func TestParseInvalidEncodingFails(t *testing.T) {
	ref := FileRef{Type: graph.TypePerson, Path: "people/bad.md", Rel: "people/bad.md"}
	_, err := NewParser(zap.NewNop()).Parse(ref, []byte{0xff, 0xfe, 0x41})
	var pe *graph.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want ParseError", err)
	}
}

func TestParseIDNormalization(t *testing.T) {
	a := parseOne(t, graph.TypePerson, "Alice", "# A")
	b := parseOne(t, graph.TypePerson, "alice", "# B")
	if a.ID != b.ID {
		t.Errorf("ids differ: %q vs %q", a.ID, b.ID)
	}
}
