package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// UsersKey is the single key under which the full user listing is cached.
// Coarse-grained on purpose: every admin shares the same entry.
const UsersKey = "users:all"

// SearchKey derives the cache key for a record search. Empty query or
// category still occupy their slot, so different filter combinations never
// collide.
func SearchKey(resource, query, category string) string {
	return fmt.Sprintf("%s:search:%s:%s", resource, query, category)
}

// ResponseCache memoizes serialized response bodies. It is never
// authoritative: lookups fail open and stores are best-effort.
type ResponseCache interface {
	// Lookup returns the cached body for key. Any backend error is a miss.
	Lookup(ctx context.Context, key string) (string, bool)
	// Store writes body under key. Implementations must never surface
	// failures to the caller.
	Store(ctx context.Context, key string, body []byte)
}

// RedisCache is the redis-backed ResponseCache. Stores run in a background
// goroutine so a slow cache backend cannot delay a response.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache with the given entry TTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Lookup fetches the cached body for key, treating every error as a miss.
func (c *RedisCache) Lookup(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Cache lookup failed for key %s: %v", key, err)
		}
		return "", false
	}
	return val, true
}

// Store writes body under key with the configured TTL, fire-and-forget.
func (c *RedisCache) Store(_ context.Context, key string, body []byte) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
			log.Printf("Cache store failed for key %s: %v", key, err)
		}
	}()
}
