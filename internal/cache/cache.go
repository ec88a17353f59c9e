// Package cache holds short-lived query results keyed by a filter signature.
package cache

import (
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultTTL is how long a cached query result stays valid.
	DefaultTTL = 5 * time.Minute

	defaultMaxEntries = 256
)

// Entry is a cached query result. Data is owned by the cache; callers store
// and receive copies.
type Entry struct {
	Signature string
	Data      any
	Timestamp time.Time
}

// Query is an in-memory TTL cache bounded by an LRU.
type Query struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries *lru.Cache[string, Entry]
}

// New creates a Query cache. Non-positive ttl or maxEntries fall back to
// defaults and a nil now uses time.Now.
func New(ttl time.Duration, maxEntries int, now func() time.Time) *Query {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	if now == nil {
		now = time.Now
	}
	entries, _ := lru.New[string, Entry](maxEntries) // only fails for size <= 0
	return &Query{ttl: ttl, now: now, entries: entries}
}

// Get returns the data cached under signature while it is younger than the
// TTL. Stale entries are dropped.
func (c *Query) Get(signature string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries.Get(signature)
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.Timestamp) >= c.ttl {
		c.entries.Remove(signature)
		return nil, false
	}
	return entry.Data, true
}

// Put caches data under signature.
func (c *Query) Put(signature string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Add(signature, Entry{Signature: signature, Data: data, Timestamp: c.now()})
}

// Invalidate drops every entry whose signature starts with prefix and
// returns how many were removed.
func (c *Query) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, sig := range c.entries.Keys() {
		if strings.HasPrefix(sig, prefix) {
			c.entries.Remove(sig)
			removed++
		}
	}
	return removed
}

// Purge drops everything.
func (c *Query) Purge() {
	c.mu.Lock()
	c.entries.Purge()
	c.mu.Unlock()
}

// Len reports the number of cached entries, including stale ones not yet
// evicted.
func (c *Query) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}
