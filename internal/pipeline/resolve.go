package pipeline

import (
	"regexp"
	"strings"

	"github.com/nidhogg/memgraph/internal/graph"
	"go.uber.org/zap"
)

// refPattern matches typed path-like tokens such as
// "concepts/archaeological_engineering" inside free text.
var refPattern = buildRefPattern()

func buildRefPattern() *regexp.Regexp {
	dirs := make([]string, 0, len(graph.Types()))
	for _, t := range graph.Types() {
		dirs = append(dirs, t.Dir())
	}
	return regexp.MustCompile(`\b(` + strings.Join(dirs, "|") + `)/([\w-]+)\b`)
}

// Resolver turns textual cross-references into edges. It requires the
// complete entity-id set up front: references may point forward to
// entities scanned later, so resolution only starts after the parse
// stage has fully finished.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a resolver.
func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve scans one entity's content against the read-only known-id set.
// Repeated mentions of the same target collapse to one edge and
// self-references are dropped. Tokens that match no known id become
// unresolved diagnostics, never placeholder nodes.
func (r *Resolver) Resolve(e graph.Entity, known map[string]bool) ([]graph.Edge, []graph.Reference) {
	matches := refPattern.FindAllStringSubmatch(e.Content, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	var edges []graph.Edge
	var unresolved []graph.Reference
	seen := make(map[string]bool, len(matches))

	for _, m := range matches {
		token := m[0]
		t, ok := graph.TypeForDir(m[1])
		if !ok {
			continue
		}
		target := graph.MakeID(t, m[2])
		if seen[target] {
			continue
		}
		seen[target] = true

		if target == e.ID {
			continue
		}
		if !known[target] {
			r.logger.Debug("unresolved reference",
				zap.String("source", e.ID), zap.String("token", token))
			unresolved = append(unresolved, graph.Reference{SourceID: e.ID, Token: token})
			continue
		}
		edges = append(edges, graph.Edge{
			FromID:           e.ID,
			ToID:             target,
			RelationshipType: graph.RelationshipReferences,
		})
	}
	return edges, unresolved
}
