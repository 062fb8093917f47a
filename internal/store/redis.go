package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nidhogg/memgraph/internal/graph"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const latestKey = "memgraph:latest"

// RedisStore keeps the latest graph document in Redis so multiple service
// instances serve the same result regardless of which one generated it.
type RedisStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(redisURL string, logger *zap.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb, logger: logger}, nil
}

// Close shuts down the Redis client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Put serializes the graph and replaces the stored document.
func (s *RedisStore) Put(ctx context.Context, g *graph.Graph) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}
	if err := s.rdb.Set(ctx, latestKey, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", latestKey, err)
	}
	s.logger.Debug("graph cached",
		zap.String("run_id", g.Metadata.RunID),
		zap.Int("bytes", len(data)))
	return nil
}

// Latest fetches and deserializes the stored document.
func (s *RedisStore) Latest(ctx context.Context) (*graph.Graph, error) {
	data, err := s.rdb.Get(ctx, latestKey).Bytes()
	if err == redis.Nil {
		return nil, ErrNoGraph
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", latestKey, err)
	}
	var g graph.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("unmarshal graph: %w", err)
	}
	return &g, nil
}
