package cache

import (
	"context"
	"encoding/json"
	"time"

	"aurum/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Cache keys for site content. Invalidate PublishedBlogsKey whenever a blog
// is published, updated, or deleted.
const (
	PublishedBlogsKey = "aurum:blogs:published"
	StatisticsKey     = "aurum:statistics"
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	s, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		observability.RedisErrorRate.WithLabelValues("get").Inc()
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, rdb *redis.Client, key string, v any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("set").Inc()
		return err
	}
	return nil
}

// Invalidate removes the given keys, best-effort.
func Invalidate(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil || len(keys) == 0 {
		return
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("del").Inc()
	}
}

// CacheAside tries Redis first, on miss it calls fetch (which should populate dest),
// then stores the result in Redis with ttl. fetch must write into dest.
func CacheAside(ctx context.Context, rdb *redis.Client, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, rdb, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, rdb, key, dest, ttl)
	return nil
}
