package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	max     int
	now     func() time.Time
}

// NewMemoryCache returns a process-local cache holding at most max entries.
// When full, expired entries are swept first and then an arbitrary entry is evicted.
func NewMemoryCache(max int) ResultCache {
	if max <= 0 {
		max = 1024
	}
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		max:     max,
		now:     time.Now,
	}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[keyPrefix+key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		delete(c.entries, keyPrefix+key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[keyPrefix+key]; !exists && len(c.entries) >= c.max {
		c.evictLocked()
	}

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries[keyPrefix+key] = e
	return nil
}

func (c *memoryCache) evictLocked() {
	now := c.now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	for k := range c.entries {
		if len(c.entries) < c.max {
			return
		}
		delete(c.entries, k)
	}
}

func (c *memoryCache) Close() error {
	return nil
}
