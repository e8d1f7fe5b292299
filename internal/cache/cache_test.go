package cache_test

import (
	"context"
	"testing"
	"time"

	"patenthub/internal/cache"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestSearchKeyDiscrimination(t *testing.T) {
	// Empty query and category still occupy their slot in the key, so
	// different filter combinations never collide.
	keys := []string{
		cache.SearchKey("patent", "", ""),
		cache.SearchKey("patent", "", "A"),
		cache.SearchKey("patent", "A", ""),
		cache.SearchKey("patent", "A", "A"),
		cache.SearchKey("product", "", "A"),
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}

	assert.Equal(t, "patent:search::Category A", cache.SearchKey("patent", "", "Category A"))
	assert.Equal(t, "users:all", cache.UsersKey)
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute)
	ctx := context.Background()

	_, ok := c.Lookup(ctx, "missing")
	assert.False(t, ok)

	c.Store(ctx, "key", []byte(`[{"id":"1"}]`))
	body, ok := c.Lookup(ctx, "key")
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, body)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := cache.NewMemoryCache(10 * time.Millisecond)
	ctx := context.Background()

	c.Store(ctx, "key", []byte("value"))
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Lookup(ctx, "key")
	assert.False(t, ok)
}

func TestRedisCacheFailsOpen(t *testing.T) {
	// A cache whose backend is unreachable must behave as a pure miss and
	// never surface errors.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
	})
	defer client.Close()

	c := cache.NewRedisCache(client, time.Minute)
	ctx := context.Background()

	_, ok := c.Lookup(ctx, "any")
	assert.False(t, ok)

	// Store is fire-and-forget; it must not block or panic.
	c.Store(ctx, "any", []byte("value"))
}
