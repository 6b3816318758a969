// Package cache provides the byte stores behind the query cache.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// entry wraps a stored value with its expiry and insertion order.
type entry struct {
	value     []byte
	expiry    time.Time
	insertIdx int64
}

// MemoryStore is an in-process QueryStore with per-entry TTL and a size cap.
// When full, the oldest inserted entry is evicted.
type MemoryStore struct {
	mu         sync.RWMutex
	items      map[string]entry
	maxEntries int
	nextIdx    int64
	now        func() time.Time
}

// NewMemoryStore creates a MemoryStore holding at most maxEntries values.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &MemoryStore{
		items:      make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns a stored value if found and not expired.
func (c *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().After(e.expiry) {
		// Expired: remove lazily, unless a fresh Set raced in.
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && c.now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores a value. Evicts the oldest entry if at capacity.
func (c *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		value:     value,
		expiry:    c.now().Add(ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}

	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[key] = e
}

// InvalidatePrefix removes all entries whose key starts with prefix.
func (c *MemoryStore) InvalidatePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Len returns the number of entries, expired ones included.
func (c *MemoryStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *MemoryStore) Backend() string { return "memory" }

func (c *MemoryStore) Close() error { return nil }

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (c *MemoryStore) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
