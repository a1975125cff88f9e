// Package cache provides Redis-backed caching helpers.
package cache

import (
	"context"
	"time"

	"aurum/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis at addr. Returns nil when Redis is
// unreachable; callers treat a nil client as "no cache".
func NewClient(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis connection failed, continuing without cache", "error", err)
		return nil
	}

	middleware.Logger.Info("Redis connected successfully")
	return client
}
