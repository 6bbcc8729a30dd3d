// Package contentcache implements the store's time-boxed read cache.
//
// Each entry memoizes one decoded remote file (content + revision). Entries
// expire after a fixed TTL and are invalidated synchronously when the owning
// store writes the path. The cache is an explicit object owned by a store
// instance, so separate stores never share entries.
package contentcache

import (
	"sync"
	"time"
)

// Entry is one memoized read.
type Entry struct {
	Content   []byte
	Revision  string
	FetchedAt time.Time
}

// Cache is a TTL-bounded map of path to Entry. Safe for concurrent use.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]Entry
}

// New creates a cache with the given TTL. now is the clock used for expiry
// checks; pass time.Now outside of tests.
func New(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]Entry),
	}
}

// Get returns the entry for path if it exists and is still fresh.
// An expired entry is dropped on the way out.
func (c *Cache) Get(path string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[path]
	if !ok {
		return Entry{}, false
	}
	if c.now().Sub(e.FetchedAt) >= c.ttl {
		delete(c.entries, path)
		return Entry{}, false
	}
	return e, true
}

// Put stores a freshly fetched file.
func (c *Cache) Put(path string, content []byte, revision string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = Entry{
		Content:   content,
		Revision:  revision,
		FetchedAt: c.now(),
	}
}

// Invalidate drops the entry for path, if any.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}

// Len returns the number of live entries, counting expired ones that have
// not been touched since expiry.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
