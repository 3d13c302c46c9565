package newscache

import "time"

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithTTL sets how long items live before EvictExpired removes them.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCapacity bounds the number of items held in memory.
func WithCapacity(capacity int) Option {
	return func(c *Cache) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// WithClock injects the time source, letting tests control TTL behavior.
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}
