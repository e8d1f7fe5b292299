package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	body      string
	expiresAt time.Time
}

// MemoryCache is an in-memory ResponseCache used in tests and as a local
// stand-in when no redis backend is configured. Stores are synchronous.
type MemoryCache struct {
	entries map[string]memoryEntry
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewMemoryCache creates a MemoryCache with the given entry TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Lookup returns the cached body for key if present and unexpired.
func (c *MemoryCache) Lookup(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.body, true
}

// Store writes body under key with the configured TTL.
func (c *MemoryCache) Store(_ context.Context, key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		body:      string(body),
		expiresAt: time.Now().Add(c.ttl),
	}
}
