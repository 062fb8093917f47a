package export

import (
	"context"
	"os"
	"testing"

	tcneo4j "github.com/testcontainers/testcontainers-go/modules/neo4j"
	"go.uber.org/zap"
)

// TestNeo4jSinkMirrorsGraph needs Docker; enable with MEMGRAPH_E2E=1.
func TestNeo4jSinkMirrorsGraph(t *testing.T) {
	if os.Getenv("MEMGRAPH_E2E") == "" {
		t.Skip("integration test disabled (set MEMGRAPH_E2E=1)")
	}

	ctx := context.Background()
	container, err := tcneo4j.Run(ctx, "neo4j:5-community",
		tcneo4j.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("start neo4j container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.BoltUrl(ctx)
	if err != nil {
		t.Fatalf("bolt url: %v", err)
	}

	sink, err := NewNeo4jSink(uri, "", "", zap.NewNop())
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	t.Cleanup(func() { _ = sink.Close(ctx) })

	if err := sink.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := sink.Export(ctx, testGraph()); err != nil {
		t.Fatalf("export: %v", err)
	}

	count, err := sink.CountNodes(ctx)
	if err != nil {
		t.Fatalf("count nodes: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d mirrored nodes, want 2", count)
	}

	// A second export with fewer nodes prunes the missing one.
	g2 := testGraph()
	g2.Metadata.RunID = "second-run"
	g2.Nodes = g2.Nodes[:1]
	g2.Edges = nil
	if err := sink.Export(ctx, g2); err != nil {
		t.Fatalf("second export: %v", err)
	}
	count, err = sink.CountNodes(ctx)
	if err != nil {
		t.Fatalf("count nodes: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d mirrored nodes after prune, want 1", count)
	}
}
