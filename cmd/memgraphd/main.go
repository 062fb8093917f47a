package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nidhogg/memgraph/internal/api"
	"github.com/nidhogg/memgraph/internal/config"
	"github.com/nidhogg/memgraph/internal/export"
	"github.com/nidhogg/memgraph/internal/pipeline"
	"github.com/nidhogg/memgraph/internal/schedule"
	"github.com/nidhogg/memgraph/internal/store"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	logger.Info("Starting memgraph...")

	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/memgraph.json"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
	}
	logger.Info("Config loaded", zap.String("path", cfgPath), zap.String("root", cfg.Memory.Root))

	// Latest-graph store: Redis when configured, in-process otherwise.
	var graphStore store.Store = store.NewMemoryStore()
	var redisStore *store.RedisStore
	if cfg.Cache.Redis.Enabled && cfg.Cache.Redis.URL != "" {
		rs, rErr := store.NewRedisStore(cfg.Cache.Redis.URL, logger)
		if rErr != nil {
			logger.Warn("Redis unavailable, serving from memory", zap.Error(rErr))
		} else {
			graphStore = rs
			redisStore = rs
		}
	}

	// Export sinks: the JSON artifact always, Neo4j mirror when configured.
	sinks := []export.Sink{export.NewFileSink(cfg.Memory.Output, logger)}
	var neoSink *export.Neo4jSink
	if cfg.Export.Neo4j.Enabled && cfg.Export.Neo4j.URI != "" {
		ns, nErr := export.NewNeo4jSink(cfg.Export.Neo4j.URI, cfg.Export.Neo4j.User, cfg.Export.Neo4j.Password, logger)
		if nErr != nil {
			logger.Warn("Neo4j unavailable, running without graph mirror", zap.Error(nErr))
		} else {
			sinks = append(sinks, ns)
			neoSink = ns
		}
	}

	gen := pipeline.NewGenerator(cfg.Memory.Workers, logger)
	runner := schedule.NewRunner(cfg.Memory.Root, gen, graphStore, sinks, logger)

	// Initial generation. A failure here is not fatal to the service: the
	// trigger surfaces stay up and the next run may succeed.
	if _, err := runner.Run(context.Background()); err != nil {
		logger.Warn("initial generation failed", zap.Error(err))
	}

	// Scheduled trigger
	var ticker *schedule.Ticker
	interval, err := cfg.Schedule.TickInterval()
	if err != nil {
		logger.Fatal("invalid schedule config", zap.Error(err))
	}
	if interval > 0 {
		ticker = schedule.NewTicker(interval, runner, logger)
		ticker.Start()
	}

	// Filesystem trigger
	var watcher *schedule.Watcher
	if cfg.Schedule.Watch {
		w, wErr := schedule.NewWatcher(cfg.Memory.Root, runner, logger)
		if wErr != nil {
			logger.Warn("filesystem watch unavailable", zap.Error(wErr))
		} else {
			watcher = w
			watcher.Start()
		}
	}

	// Build HTTP handler
	handler := api.NewHandler(runner, graphStore, logger)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("memgraph listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down memgraph...")
	ctx := context.Background()
	srv.Shutdown(ctx)
	if ticker != nil {
		ticker.Stop()
	}
	if watcher != nil {
		watcher.Stop()
	}
	if neoSink != nil {
		neoSink.Close(ctx)
	}
	if redisStore != nil {
		redisStore.Close()
	}
}
