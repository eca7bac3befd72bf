package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisUpsellCache backs the upsell cache with Redis. Cache failures degrade
// to recomputation, never to request errors.
type redisUpsellCache struct {
	client *redis.Client
}

// NewRedisUpsellCache wraps a Redis client as an UpsellCache.
func NewRedisUpsellCache(client *redis.Client) UpsellCache {
	return &redisUpsellCache{client: client}
}

func (c *redisUpsellCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *redisUpsellCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
}
