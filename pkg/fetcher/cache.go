package fetcher

import (
	"context"
	"sync"
	"time"

	"github.com/umputun/feedpulse/pkg/domain"
)

// Cache stores fetched items per source for a TTL. A miss is never an
// error; backends that fail degrade to misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.Item, bool)
	Set(ctx context.Context, key string, items []domain.Item, ttl time.Duration)
}

// MemoryCache is the default in-process cache. Expired entries are evicted
// lazily on read.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	nowFn   func() time.Time
}

type cacheEntry struct {
	items     []domain.Item
	expiresAt time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		nowFn:   time.Now,
	}
}

// Get returns the cached items for key if present and not expired.
func (c *MemoryCache) Get(_ context.Context, key string) ([]domain.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.nowFn().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.items, true
}

// Set stores items under key for ttl.
func (c *MemoryCache) Set(_ context.Context, key string, items []domain.Item, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{items: items, expiresAt: c.nowFn().Add(ttl)}
}
