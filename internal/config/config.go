// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// UpdateQueueSize bounds the in-memory update queue.
	UpdateQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of update workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the update id deduplication window.
	DedupeSize int `koanf:"dedupe_size"`

	// MatchParallelism bounds the goroutines scoring one ranking call.
	MatchParallelism int `koanf:"match_parallelism"`

	// DefaultMatchLimit applies when a request omits limit.
	DefaultMatchLimit int `koanf:"default_match_limit"`

	// MaxMatchLimit caps the limit query parameter.
	MaxMatchLimit int `koanf:"max_match_limit"`

	// ProjectCandidateCap bounds recruiting projects loaded per ranking.
	ProjectCandidateCap int `koanf:"project_candidate_cap"`

	// MemberCandidateCap bounds users loaded per member ranking.
	MemberCandidateCap int `koanf:"member_candidate_cap"`

	// SeedFile optionally points at a YAML file with users and projects.
	SeedFile string `koanf:"seed_file"`

	// CacheEnabled turns on the Redis match cache.
	CacheEnabled bool `koanf:"cache_enabled"`

	// RedisAddr, RedisPassword and RedisDB configure the cache connection.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// CacheTTLSeconds bounds how long a cached ranking is served.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// RateLimitRPS and RateLimitBurst configure the per-client limiter on
	// matching routes. RPS <= 0 disables limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		UpdateQueueSize:     10_000,
		WorkerCount:         runtime.NumCPU() * 2,
		DedupeSize:          50_000,
		MatchParallelism:    runtime.NumCPU(),
		DefaultMatchLimit:   10,
		MaxMatchLimit:       20,
		ProjectCandidateCap: 50,
		MemberCandidateCap:  100,
		CacheEnabled:        false,
		RedisAddr:           "localhost:6379",
		CacheTTLSeconds:     300,
		RateLimitRPS:        20,
		RateLimitBurst:      40,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxMatchLimit < 1:
		return fmt.Errorf("%w: max_match_limit must be positive", ErrInvalidConfig)
	case c.DefaultMatchLimit < 1 || c.DefaultMatchLimit > c.MaxMatchLimit:
		return fmt.Errorf("%w: default_match_limit must be within 1..max_match_limit", ErrInvalidConfig)
	case c.CacheTTLSeconds < 0:
		return fmt.Errorf("%w: cache_ttl_seconds must not be negative", ErrInvalidConfig)
	case c.CacheEnabled && c.RedisAddr == "":
		return fmt.Errorf("%w: redis_addr is required when the cache is enabled", ErrInvalidConfig)
	}
	return nil
}
