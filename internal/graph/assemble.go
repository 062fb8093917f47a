package graph

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Assembler combines parsed entities and candidate edges into the final
// Graph. It is the single authoritative point where well-formedness is
// decided; downstream consumers do not re-validate.
type Assembler struct {
	logger *zap.Logger
}

// NewAssembler creates an assembler.
func NewAssembler(logger *zap.Logger) *Assembler {
	return &Assembler{logger: logger}
}

// Assemble validates entities and edges and produces an immutable Graph.
// Duplicate ids are fatal. Edges whose endpoints are not both present are
// dropped, as are repeated (from,to) pairs. Nodes and edges are sorted so
// the serialized document is deterministic regardless of enumeration order.
func (a *Assembler) Assemble(entities []Entity, edges []Edge, diags *Diagnostics) (*Graph, error) {
	byID := make(map[string]string, len(entities)) // id -> path
	for _, e := range entities {
		if prev, ok := byID[e.ID]; ok {
			return nil, &DuplicateIDError{ID: e.ID, Paths: []string{prev, e.Path}}
		}
		byID[e.ID] = e.Path
	}

	seen := make(map[[2]string]bool, len(edges))
	kept := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if _, ok := byID[e.FromID]; !ok {
			a.logger.Warn("dropping edge with unknown source", zap.String("from", e.FromID))
			continue
		}
		if _, ok := byID[e.ToID]; !ok {
			a.logger.Warn("dropping edge with unknown target", zap.String("to", e.ToID))
			continue
		}
		key := [2]string{e.FromID, e.ToID}
		if seen[key] {
			continue
		}
		seen[key] = true
		if e.RelationshipType == "" {
			e.RelationshipType = RelationshipReferences
		}
		kept = append(kept, e)
	}

	nodes := make([]Entity, len(entities))
	copy(nodes, entities)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].FromID != kept[j].FromID {
			return kept[i].FromID < kept[j].FromID
		}
		return kept[i].ToID < kept[j].ToID
	})

	typeCounts := make(map[string]int, len(typeDirs))
	for _, n := range nodes {
		typeCounts[string(n.Type)]++
	}

	g := &Graph{
		Nodes: nodes,
		Edges: kept,
		Metadata: Metadata{
			NodeCount:   len(nodes),
			EdgeCount:   len(kept),
			TypeCounts:  typeCounts,
			GeneratedAt: time.Now().UTC(),
			RunID:       uuid.New().String(),
		},
		Diagnostics: diags,
	}

	a.logger.Info("graph assembled",
		zap.String("run_id", g.Metadata.RunID),
		zap.Int("nodes", g.Metadata.NodeCount),
		zap.Int("edges", g.Metadata.EdgeCount),
		zap.Int("unresolved", diags.UnresolvedCount()))
	return g, nil
}
