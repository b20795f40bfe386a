// Package cache implements the report cache on Redis.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-insights/backend/internal/application/adapter"
)

// reportCache implements adapter.ReportCache on a Redis client. Failures
// degrade to cache misses; report generation never depends on Redis
// being reachable.
type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a new Redis-backed report cache.
func NewReportCache(client *redis.Client, ttl time.Duration) adapter.ReportCache {
	return &reportCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached payload for key, if present.
func (c *reportCache) Get(ctx context.Context, userID uuid.UUID, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, cacheKey(userID, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("report cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return payload, true
}

// Set stores payload under key for the configured TTL.
func (c *reportCache) Set(ctx context.Context, userID uuid.UUID, key string, payload []byte) {
	if err := c.client.Set(ctx, cacheKey(userID, key), payload, c.ttl).Err(); err != nil {
		slog.Warn("report cache write failed", "key", key, "error", err)
	}
}

// InvalidateUser drops every cached report for the user.
func (c *reportCache) InvalidateUser(ctx context.Context, userID uuid.UUID) {
	pattern := fmt.Sprintf("reports:%s:*", userID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("report cache scan failed", "userID", userID, "error", err)
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("report cache invalidation failed", "userID", userID, "error", err)
	}
}

func cacheKey(userID uuid.UUID, key string) string {
	return fmt.Sprintf("reports:%s:%s", userID, key)
}
