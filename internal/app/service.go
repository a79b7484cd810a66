// Package service wires the store, ingestion pipeline, cache and matching
// engine into the operations the HTTP API and CLI depend on.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/okian/buildermatch/internal/adapters/cache"
	eventqueue "github.com/okian/buildermatch/internal/adapters/mq/queue"
	workerpool "github.com/okian/buildermatch/internal/adapters/mq/worker"
	"github.com/okian/buildermatch/internal/adapters/repository"
	"github.com/okian/buildermatch/internal/domain/dedupe"
	"github.com/okian/buildermatch/internal/domain/matching"
	"github.com/okian/buildermatch/pkg/logger"
	"github.com/okian/buildermatch/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize  = 10_000
	defaultDedupeSize = 50_000
	defaultLimit      = 10
	defaultMaxLimit   = 20
	defaultProjectCap = 50
	defaultMemberCap  = 100
	stopTimeout       = 30 * time.Second
)

// Service implements the API dependencies for the matching system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	ownedStore *repository.MemStore
	deduper    dedupe.Deduper
	cache      *cache.Versioned
	engine     *matching.Engine
	queue      *eventqueue.InMemoryQueue
	workerPool *workerpool.Pool
	now        func() time.Time

	// Configuration
	workerCount  int
	queueSize    int
	dedupeSize   int
	defaultLimit int
	maxLimit     int
	projectCap   int
	memberCap    int

	started bool
	logger  logger.Logger
}

// New constructs a Service. Ranking works immediately; ingestion needs Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU() * 2,
		queueSize:    defaultQueueSize,
		dedupeSize:   defaultDedupeSize,
		defaultLimit: defaultLimit,
		maxLimit:     defaultMaxLimit,
		projectCap:   defaultProjectCap,
		memberCap:    defaultMemberCap,
		cache:        cache.NewVersioned(cache.Noop{}),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.engine == nil {
		s.engine = matching.New()
	}
	if s.store == nil {
		s.ownedStore = repository.NewMemStore(context.Background())
		s.store = s.ownedStore
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	return s
}

// Store returns the backing store.
func (s *Service) Store() repository.Store {
	return s.store
}

// LoadSeed loads users and projects from a YAML seed file into the store.
func (s *Service) LoadSeed(ctx context.Context, path string) error {
	users, projects, err := repository.LoadSeed(ctx, path, s.store)
	if err != nil {
		return err
	}
	metrics.UpdateStoredCounts(s.store.CountUsers(ctx), s.store.CountProjects(ctx))
	s.logger.Info(ctx, "seed loaded",
		logger.String("path", path),
		logger.Int("users", users),
		logger.Int("projects", projects),
	)
	return nil
}

// Start creates the update queue and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting matching service...")

	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.workerPool = workerpool.NewPool(s.workerCount, s.queue, s.store, s.cache)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop drains the update queue, stops the workers and releases the cache
// and the store the service created.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if s.started {
		s.logger.Info(ctx, "stopping matching service...")
		if err := s.workerPool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
		}
		s.started = false
	}

	if err := s.cache.Close(); err != nil {
		s.logger.Warn(ctx, "cache close", logger.Error(err))
	}
	s.cache = cache.NewVersioned(cache.Noop{})
	if s.ownedStore != nil {
		_ = s.ownedStore.Close()
	}
	s.logger.Info(ctx, "matching service stopped")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	users, projects := s.store.CountUsers(ctx), s.store.CountProjects(ctx)
	stats := map[string]interface{}{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueSize":     s.queueSize,
		"dedupeSize":    s.dedupeSize,
		"dedupeLength":  s.deduper.Size(),
		"totalUsers":    users,
		"totalProjects": projects,
		"defaultLimit":  s.defaultLimit,
		"maxLimit":      s.maxLimit,
	}
	metrics.UpdateStoredCounts(users, projects)

	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["updatesApplied"] = s.workerPool.Processed()
		metrics.UpdateQueueSize(queueLen, s.queueSize)
	}
	return stats
}
