package cache

import "time"

// Option configures a RedisCache.
type Option func(*RedisCache)

// WithTTL sets the expiry of stored entries. Zero keeps entries until invalidated.
func WithTTL(ttl time.Duration) Option {
	return func(c *RedisCache) {
		if ttl >= 0 {
			c.ttl = ttl
		}
	}
}

// WithScanCount sets the SCAN batch hint used by DeletePrefix.
func WithScanCount(n int64) Option {
	return func(c *RedisCache) {
		if n > 0 {
			c.scanCount = n
		}
	}
}
