// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kervanlab/kervan/internal/platform/constants"
)

// RedisStore shares fixed windows across API instances via Redis.
//
// Each identifier maps to a counter key that expires with its window, so
// Redis evicts stale windows on its own and no sweeper is needed.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisStore creates a Redis-backed fixed-window store.
func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

// Check implements [Store].
//
// The counter is incremented atomically; the first increment in a window also
// arms the key's TTL. If Redis is unreachable the check fails open: throttling
// is an abuse control, not a correctness guarantee, and a Redis outage must
// not lock every user out of login.
func (store *RedisStore) Check(ctx context.Context, identifier string, window time.Duration, max int) Decision {
	key := constants.RedisPrefixThrottle + identifier

	pipe := store.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	// NX arms the TTL only on the increment that opened the window.
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.TTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		store.logger.Warn("throttle_redis_unavailable",
			slog.String("identifier", identifier),
			slog.Any("error", err),
		)
		return Decision{Allowed: true, Remaining: max - 1, ResetAt: time.Now().Add(window)}
	}

	count := int(incr.Val())
	resetAt := time.Now().Add(ttl.Val())

	if count > max {
		return Decision{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}

	return Decision{Allowed: true, Remaining: max - count, ResetAt: resetAt}
}
