// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package cart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/kervanlab/kervan/internal/platform/constants"
)

// Repository defines the persistence contract for raw cart contents.
type Repository interface {
	// Load returns the product ID → quantity map; empty map for no cart.
	Load(ctx context.Context, userID string) (map[string]int, error)
	// SetItem upserts one line and re-arms the cart TTL.
	SetItem(ctx context.Context, userID, productID string, quantity int) error
	// RemoveItem deletes one line.
	RemoveItem(ctx context.Context, userID, productID string) error
	// Clear deletes the whole cart.
	Clear(ctx context.Context, userID string) error
}

// RedisRepository implements [Repository] on a Redis hash per user.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func cartKey(userID string) string {
	return constants.RedisPrefixCart + userID
}

func (repository *RedisRepository) Load(ctx context.Context, userID string) (map[string]int, error) {
	raw, err := repository.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_cart_load_failed: %w", err)
	}

	items := make(map[string]int, len(raw))
	for productID, quantityStr := range raw {
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil || quantity <= 0 {
			// Corrupt fields are dropped rather than failing the whole cart.
			continue
		}
		items[productID] = quantity
	}

	return items, nil
}

func (repository *RedisRepository) SetItem(ctx context.Context, userID, productID string, quantity int) error {
	key := cartKey(userID)

	pipe := repository.client.TxPipeline()
	pipe.HSet(ctx, key, productID, quantity)
	pipe.Expire(ctx, key, TTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis_cart_set_item_failed: %w", err)
	}
	return nil
}

func (repository *RedisRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	if err := repository.client.HDel(ctx, cartKey(userID), productID).Err(); err != nil {
		return fmt.Errorf("redis_cart_remove_item_failed: %w", err)
	}
	return nil
}

func (repository *RedisRepository) Clear(ctx context.Context, userID string) error {
	if err := repository.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis_cart_clear_failed: %w", err)
	}
	return nil
}
