package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin Redis wrapper used to cache provider responses. A nil
// *Cache is valid and behaves as a cache that always misses, so callers
// never need to branch on whether caching is enabled.
type Cache struct {
	rdb *redis.Client
}

// New creates a Cache backed by the given Redis client.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Get returns the cached value for key and whether it was present.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores value under key with the given TTL. A cache write failure is
// logged and ignored; it must never fail the request.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}
