package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/nidhogg/memgraph/internal/graph"
	"go.uber.org/zap"
)

// Parser converts one entity file into an Entity record.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a parser.
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// ParseFile reads and parses one entity file. Empty or unreadable files
// are fatal: a missing entity silently breaks referential integrity for
// every other entity referencing it.
func (p *Parser) ParseFile(ref FileRef) (graph.Entity, error) {
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return graph.Entity{}, &graph.ParseError{Path: ref.Path, Reason: "read failed", Err: err}
	}
	return p.Parse(ref, data)
}

// Parse builds the Entity from raw content. The id derives from the type
// and filename stem; the label comes from the first markdown heading when
// present, else the title-cased filename.
func (p *Parser) Parse(ref FileRef, data []byte) (graph.Entity, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return graph.Entity{}, &graph.ParseError{Path: ref.Path, Reason: "empty file"}
	}
	if !utf8.Valid(data) {
		return graph.Entity{}, &graph.ParseError{Path: ref.Path, Reason: "invalid UTF-8"}
	}

	content := string(data)
	stem := strings.TrimSuffix(filepath.Base(ref.Path), filepath.Ext(ref.Path))

	label := titleFromStem(stem)
	if h := firstHeading(content); h != "" {
		label = h
	}

	return graph.Entity{
		ID:      graph.MakeID(ref.Type, stem),
		Label:   label,
		Type:    ref.Type,
		Path:    ref.Rel,
		Color:   ref.Type.Color(),
		Content: content,
	}, nil
}

// firstHeading returns the text of the first markdown heading line, or ""
// if the first non-empty line is not a heading.
func firstHeading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
		return ""
	}
	return ""
}

// titleFromStem converts a filename stem into a display label,
// e.g. "archaeological_engineering" -> "Archaeological Engineering".
func titleFromStem(stem string) string {
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")
	words := strings.Fields(stem)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}
