package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/buildermatch/internal/domain/types"
	"github.com/okian/buildermatch/pkg/metrics"
)

// RedisConfig holds connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache is a ResultCache backed by Redis. Values are JSON encoded.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	scanCount int64
}

var _ ResultCache = (*RedisCache)(nil)

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, cfg RedisConfig, opts ...Option) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrUnavailable, cfg.Addr, err)
	}
	return NewRedisWithClient(client, opts...), nil
}

// NewRedisWithClient wraps an existing client. The cache owns the client
// and closes it on Close.
func NewRedisWithClient(client *redis.Client, opts ...Option) *RedisCache {
	c := &RedisCache{
		client:    client,
		ttl:       5 * time.Minute,
		scanCount: 100,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get implements ResultCache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]types.MatchResult, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheMiss()
		return nil, false, nil
	}
	if err != nil {
		metrics.RecordCacheError()
		return nil, false, fmt.Errorf("%w: get %s: %w", ErrUnavailable, key, err)
	}
	var results []types.MatchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		metrics.RecordCacheError()
		return nil, false, fmt.Errorf("%w: %s: %w", ErrCorrupt, key, err)
	}
	metrics.RecordCacheHit()
	return results, true, nil
}

// Set implements ResultCache.
func (c *RedisCache) Set(ctx context.Context, key string, results []types.MatchResult) error {
	if results == nil {
		results = []types.MatchResult{}
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrCorrupt, key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		metrics.RecordCacheError()
		return fmt.Errorf("%w: set %s: %w", ErrUnavailable, key, err)
	}
	return nil
}

// DeletePrefix implements ResultCache using SCAN so large keyspaces are not blocked.
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	pattern := escapeGlob(prefix) + "*"
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, c.scanCount).Result()
		if err != nil {
			metrics.RecordCacheError()
			return removed, fmt.Errorf("%w: scan %s: %w", ErrUnavailable, prefix, err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				metrics.RecordCacheError()
				return removed, fmt.Errorf("%w: del %s: %w", ErrUnavailable, prefix, err)
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if removed > 0 {
		metrics.RecordCacheInvalidation()
	}
	return removed, nil
}

// Close implements ResultCache.
func (c *RedisCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// escapeGlob quotes the characters SCAN MATCH treats specially.
func escapeGlob(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
