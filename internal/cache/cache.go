// Package cache provides the TTL-bounded store for analysis results,
// keyed by user and analysis kind.
package cache

import (
	"sync"
	"time"
)

//go:generate mockgen -source=cache.go -destination=../mocks/cache/mock_cache.go -package=mock_cache

// Cache stores computed analysis results for a bounded time. Expiry is
// checked on read; there are no background cleanup timers.
type Cache interface {
	Get(userID, kind string) (any, bool)
	Set(userID, kind string, value any, ttl time.Duration)
	Delete(userID, kind string)
	Clear()
}

type cacheKey struct {
	userID string
	kind   string
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// MemoryCache is an in-process Cache. Writes replace whole entries;
// expired entries are dropped when a read finds them.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithClock(time.Now)
}

func NewMemoryCacheWithClock(now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries: make(map[cacheKey]cacheEntry),
		now:     now,
	}
}

// Get returns the cached value for (userID, kind), or false when the entry
// is absent or has expired.
func (c *MemoryCache) Get(userID, kind string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{userID: userID, kind: kind}
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores a value for (userID, kind), replacing any previous entry.
// A non-positive ttl stores nothing.
func (c *MemoryCache) Set(userID, kind string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{userID: userID, kind: kind}] = cacheEntry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

// Delete drops the entry for (userID, kind), if any. Other users' entries
// are untouched.
func (c *MemoryCache) Delete(userID, kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, cacheKey{userID: userID, kind: kind})
}

// Clear drops every entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[cacheKey]cacheEntry)
}
