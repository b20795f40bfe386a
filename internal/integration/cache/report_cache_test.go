// Package cache implements the report cache on Redis.
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*reportCache, *miniredis.Miniredis) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	return NewReportCache(client, time.Minute).(*reportCache), mini
}

func TestReportCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	if _, ok := cache.Get(ctx, userID, "summary:6:2023"); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Set(ctx, userID, "summary:6:2023", []byte(`{"total":"109.40"}`))

	payload, ok := cache.Get(ctx, userID, "summary:6:2023")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(payload) != `{"total":"109.40"}` {
		t.Errorf("unexpected payload %s", payload)
	}
}

func TestReportCacheExpiry(t *testing.T) {
	cache, mini := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	cache.Set(ctx, userID, "summary:6:2023", []byte("payload"))
	mini.FastForward(2 * time.Minute)

	if _, ok := cache.Get(ctx, userID, "summary:6:2023"); ok {
		t.Error("expected miss after TTL")
	}
}

func TestReportCacheInvalidateUser(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	cache.Set(ctx, userID, "summary:6:2023", []byte("a"))
	cache.Set(ctx, userID, "annual:2023", []byte("b"))
	cache.Set(ctx, otherID, "summary:6:2023", []byte("c"))

	cache.InvalidateUser(ctx, userID)

	if _, ok := cache.Get(ctx, userID, "summary:6:2023"); ok {
		t.Error("expected user summary to be dropped")
	}
	if _, ok := cache.Get(ctx, userID, "annual:2023"); ok {
		t.Error("expected user annual report to be dropped")
	}
	if _, ok := cache.Get(ctx, otherID, "summary:6:2023"); !ok {
		t.Error("expected other user's entry to survive")
	}
}

func TestReportCacheUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	cache := NewReportCache(client, time.Minute).(*reportCache)
	ctx := context.Background()

	// Failures behave as misses and never panic or block reports.
	if _, ok := cache.Get(ctx, uuid.New(), "summary:6:2023"); ok {
		t.Error("expected miss when redis is unreachable")
	}
	cache.Set(ctx, uuid.New(), "summary:6:2023", []byte("payload"))
	cache.InvalidateUser(ctx, uuid.New())
}
