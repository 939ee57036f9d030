// Package redis implements domain.RoomStore backed by Redis.
//
// Rooms live in hashes keyed by code, member order in lists, and sentiment in
// per-room hashes keyed by row position, so rejoining members keep one
// sentiment per appended row. A per-room position hash and a global member
// index hash resolve memberID -> first row and memberID -> code, so sentiment
// updates avoid scanning every room. All multi-key mutations run as Lua
// scripts for atomicity.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// NewClient creates a go-redis client from a URL (e.g. "redis://localhost:6379"),
// installs the metrics and circuit breaker hooks, and verifies connectivity.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := goredis.NewClient(opts)
	rdb.AddHook(&MetricsHook{})
	rdb.AddHook(NewCircuitBreakerHook())

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rdb, nil
}
