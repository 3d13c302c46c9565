package marketcache

import "time"

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithTTL sets the age beyond which a snapshot is reported stale.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithTolerance sets the allowed deviation of yes+no from 1.0.
func WithTolerance(tolerance float64) Option {
	return func(c *Cache) {
		if tolerance > 0 {
			c.tolerance = tolerance
		}
	}
}

// WithClock injects the time source, letting tests control staleness.
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}
