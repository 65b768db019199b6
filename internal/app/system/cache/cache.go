// internal/app/system/cache/cache.go
//
// Read-through JSON cache backed by Redis. The cache is optional: a
// nil *Cache (or one built with a nil client) turns every operation
// into a no-op passthrough, so handlers never branch on whether Redis
// is configured.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// New wraps a Redis client with a default TTL. rdb may be nil.
func New(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl, log: logger}
}

// GetJSON gets key from Redis and unmarshals into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) on miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	s, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with the cache's TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// Aside tries Redis first; on miss it calls fetch (which must write
// into dest), then stores the result best-effort. Redis read errors
// degrade to a fetch rather than failing the request.
func (c *Cache) Aside(ctx context.Context, key string, dest any, fetch func() error) error {
	if c == nil {
		return fetch()
	}
	found, err := c.GetJSON(ctx, key, dest)
	if err != nil {
		c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return nil
	}
	if err := fetch(); err != nil {
		return err
	}
	if err := c.SetJSON(ctx, key, dest); err != nil {
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Invalidate deletes keys, best-effort.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
