package service

import (
	"time"

	"github.com/okian/buildermatch/internal/adapters/cache"
	"github.com/okian/buildermatch/internal/adapters/repository"
	"github.com/okian/buildermatch/internal/domain/matching"
	"github.com/okian/buildermatch/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of update workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the update queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the update id deduplication window.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the in-memory store. The caller keeps ownership.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCache sets the match result cache. The service closes it on Stop.
func WithCache(c cache.ResultCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = cache.NewVersioned(c)
		}
	}
}

// WithClock sets the time source used for activity scoring.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEngine replaces the matching engine.
func WithEngine(e *matching.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithCandidateCaps bounds how many projects and users are loaded per ranking.
func WithCandidateCaps(projects, members int) Option {
	return func(s *Service) {
		if projects > 0 {
			s.projectCap = projects
		}
		if members > 0 {
			s.memberCap = members
		}
	}
}

// WithMatchLimits sets the limit used when a request omits one and the
// largest limit a request may ask for.
func WithMatchLimits(defaultLimit, maxLimit int) Option {
	return func(s *Service) {
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
		if defaultLimit > 0 && defaultLimit <= s.maxLimit {
			s.defaultLimit = defaultLimit
		}
	}
}
