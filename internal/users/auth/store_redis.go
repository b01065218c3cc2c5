// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/platform/constants"
)

// RedisResetTokenRepository implements [ResetTokenRepository] on Redis.
//
// Redis expiry does the TTL housekeeping: an unredeemed token simply
// disappears after [ResetTokenTTL].
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a Redis implementation of [ResetTokenRepository].
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// Save associates a token digest with a user ID for the given TTL.
func (repository *RedisResetTokenRepository) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixResetToken + tokenHash
	if err := repository.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_save_failed: %w", err)
	}
	return nil
}

// Consume atomically fetches and deletes the digest via GETDEL, so a reset
// token can only ever be redeemed once even under concurrent submissions.
func (repository *RedisResetTokenRepository) Consume(ctx context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixResetToken + tokenHash

	userID, err := repository.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", fmt.Errorf("redis_reset_token_consume_failed: %w", err)
	}

	return userID, nil
}
