package export

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/nidhogg/memgraph/internal/graph"
	"go.uber.org/zap"
)

// Neo4jSink mirrors the current graph into Neo4j for graph-native
// consumers. Each export replaces the previous mirror; there is no
// history of past runs.
type Neo4jSink struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewNeo4jSink creates a Neo4j-backed sink.
func NewNeo4jSink(uri, user, password string, logger *zap.Logger) (*Neo4jSink, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Neo4jSink{driver: driver, logger: logger}, nil
}

func (s *Neo4jSink) Name() string { return "neo4j" }

// Ping verifies the Neo4j connection.
func (s *Neo4jSink) Ping(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

// Close shuts down the Neo4j driver.
func (s *Neo4jSink) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Export upserts every node and edge tagged with the run id, then prunes
// whatever earlier runs left behind.
func (s *Neo4jSink) Export(ctx context.Context, g *graph.Graph) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	runID := g.Metadata.RunID

	nodes := make([]map[string]interface{}, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, map[string]interface{}{
			"id": n.ID, "label": n.Label, "type": string(n.Type),
			"path": n.Path, "color": n.Color,
		})
	}
	_, err := session.Run(ctx,
		`UNWIND $nodes AS n
		 MERGE (e:Entity {id: n.id})
		 SET e.label = n.label, e.type = n.type, e.path = n.path,
		     e.color = n.color, e.run_id = $runId`,
		map[string]interface{}{"nodes": nodes, "runId": runID})
	if err != nil {
		return fmt.Errorf("upsert nodes: %w", err)
	}

	edges := make([]map[string]interface{}, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, map[string]interface{}{"from": e.FromID, "to": e.ToID})
	}
	_, err = session.Run(ctx,
		`UNWIND $edges AS e
		 MATCH (a:Entity {id: e.from}), (b:Entity {id: e.to})
		 MERGE (a)-[r:REFERENCES]->(b)
		 SET r.run_id = $runId`,
		map[string]interface{}{"edges": edges, "runId": runID})
	if err != nil {
		return fmt.Errorf("upsert edges: %w", err)
	}

	// Prune nodes and edges that did not survive this run.
	_, err = session.Run(ctx,
		`MATCH (e:Entity) WHERE e.run_id <> $runId DETACH DELETE e`,
		map[string]interface{}{"runId": runID})
	if err != nil {
		return fmt.Errorf("prune stale nodes: %w", err)
	}
	_, err = session.Run(ctx,
		`MATCH ()-[r:REFERENCES]->() WHERE r.run_id <> $runId DELETE r`,
		map[string]interface{}{"runId": runID})
	if err != nil {
		return fmt.Errorf("prune stale edges: %w", err)
	}

	s.logger.Info("graph mirrored to neo4j",
		zap.String("run_id", runID),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)))
	return nil
}

// CountNodes returns the number of mirrored entities, used by health checks.
func (s *Neo4jSink) CountNodes(ctx context.Context) (int64, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `MATCH (e:Entity) RETURN count(e) AS n`, nil)
	if err != nil {
		return 0, err
	}
	rec, err := result.Single(ctx)
	if err != nil {
		return 0, err
	}
	n, _ := rec.Get("n")
	count, ok := n.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected count type %T", n)
	}
	return count, nil
}
