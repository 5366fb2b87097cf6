package rest

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// cacheEntry is a cached GET payload with expiry.
type cacheEntry struct {
	data      json.RawMessage
	expiresAt time.Time
	createdAt time.Time
}

// readCache is a small TTL cache for GET payloads. Keys include the bearer
// token, so a session transition naturally stops matching stale entries.
// Any successful mutating call flushes it wholesale: the client cannot know
// which reads a write invalidated server-side.
type readCache struct {
	mu      sync.Mutex
	entries map[uint64]*cacheEntry
	ttl     time.Duration
	maxSize int
}

func newReadCache(ttl time.Duration, maxSize int) *readCache {
	return &readCache{
		entries: make(map[uint64]*cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// key hashes token, method, and full URL with NUL separators.
func cacheKey(token, method, url string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(token)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(method)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(url)
	return h.Sum64()
}

// get returns the cached payload if present and unexpired.
func (c *readCache) get(key uint64) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.data, true
}

// put stores a payload, evicting the oldest entry when full.
func (c *readCache) put(key uint64, data json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		now := time.Now()
		var oldest time.Time
		var oldestKey uint64
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
				continue
			}
			if oldest.IsZero() || e.createdAt.Before(oldest) {
				oldest = e.createdAt
				oldestKey = k
			}
		}
		if len(c.entries) >= c.maxSize && !oldest.IsZero() {
			delete(c.entries, oldestKey)
		}
	}

	now := time.Now()
	c.entries[key] = &cacheEntry{
		data:      data,
		expiresAt: now.Add(c.ttl),
		createdAt: now,
	}
}

// flush drops every entry.
func (c *readCache) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]*cacheEntry)
}

// size returns the current entry count. Primarily for tests.
func (c *readCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
