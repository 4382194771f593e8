// Package cache memoizes computed reports keyed by request content. The
// key is a digest of the full canonical input, so differing collections can
// never collide on a (viewer, dateRange) pair; a hit returns the identical
// report the first computation produced.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/okian/salespulse/internal/domain/report"
)

// Default cache configuration constants.
const (
	defaultMaxEntries = 256
	defaultTTL        = 5 * time.Minute
)

// Cache is a bounded in-memory report store with FIFO eviction and TTL
// expiry. Callers must treat returned reports as immutable.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	order      []string
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

type entry struct {
	report   *report.Report
	storedAt time.Time
}

// New creates a Cache with default configuration options.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]*entry),
		maxEntries: defaultMaxEntries,
		ttl:        defaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives the content-addressed cache key for an input.
func Key(in report.Input) (string, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrKeyEncoding, err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// Get returns the memoized report for key, if present and unexpired.
func (c *Cache) Get(_ context.Context, key string) (*report.Report, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		c.mu.Lock()
		c.remove(key)
		c.mu.Unlock()
		return nil, false
	}
	return e.report, true
}

// Put memoizes a report under key, evicting the oldest entry when full.
// Returns the number of evicted entries.
func (c *Cache) Put(_ context.Context, key string, r *report.Report) int {
	if c.maxEntries < 1 || r == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = &entry{report: r, storedAt: c.now()}
		return 0
	}

	evicted := 0
	for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
		c.remove(c.order[0])
		evicted++
	}
	c.entries[key] = &entry{report: r, storedAt: c.now()}
	c.order = append(c.order, key)
	return evicted
}

// Len returns the current number of cached reports.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// remove deletes key from both the map and the order list. Must be called
// with c.mu held for writing.
func (c *Cache) remove(key string) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
