// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// stats.go provides a Valkey-backed cache for the dashboard statistics
// payload. Computing the stats costs several aggregate queries, so the
// JSON blob is kept for a short TTL and dropped whenever a customer,
// staff, or template record changes.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// statsKey is the Valkey key holding the dashboard stats JSON.
	statsKey = "stats:dashboard"

	// DefaultStatsTTL bounds staleness even without explicit invalidation.
	DefaultStatsTTL = 60 * time.Second
)

// StatsCache manages the cached dashboard statistics blob in Valkey.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a stats cache backed by the given Valkey client.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl == 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

// Get retrieves the cached stats JSON. Returns false on miss.
func (sc *StatsCache) Get(ctx context.Context) ([]byte, bool) {
	val, err := sc.client.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("stats cache get error", "error", err)
		return nil, false
	}
	return val, true
}

// Set stores the stats JSON with the configured TTL.
func (sc *StatsCache) Set(ctx context.Context, payload []byte) {
	if err := sc.client.Set(ctx, statsKey, payload, sc.ttl).Err(); err != nil {
		slog.Warn("stats cache set error", "error", err)
	}
}

// Invalidate drops the cached stats. Called after any write that moves
// the dashboard numbers.
func (sc *StatsCache) Invalidate(ctx context.Context) {
	if err := sc.client.Del(ctx, statsKey).Err(); err != nil {
		slog.Warn("stats cache invalidate error", "error", err)
	}
}
