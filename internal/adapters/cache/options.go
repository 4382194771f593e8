package cache

import "time"

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithMaxEntries bounds the number of memoized reports. Zero disables the
// cache entirely.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		if n >= 0 {
			c.maxEntries = n
		}
	}
}

// WithTTL sets the expiry for memoized reports. Zero keeps entries until
// evicted.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl >= 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}
