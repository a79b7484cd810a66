// Package worker applies queued ingestion updates to the store.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/buildermatch/internal/adapters/cache"
	"github.com/okian/buildermatch/internal/domain/model"
	"github.com/okian/buildermatch/pkg/logger"
	"github.com/okian/buildermatch/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	poolShutdownTimeout     = 30 * time.Second
)

// ErrMalformedUpdate is returned for an update whose payload does not match its kind.
var ErrMalformedUpdate = errors.New("malformed update")

// Update is what workers read off the queue.
type Update = model.Update

// Store receives applied updates.
type Store interface {
	UpsertUser(ctx context.Context, user model.UserRecord) (bool, error)
	UpsertProject(ctx context.Context, project model.ProjectRecord) (bool, error)
}

// Invalidator drops cached rankings made stale by an update.
type Invalidator interface {
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// Queue defines how workers receive updates.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Update
}

// Worker processes updates until its queue closes.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue is drained.
	Run(ctx context.Context)

	// Shutdown stops the worker without waiting for the queue to drain.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue       Queue
	store       Store
	invalidator Invalidator
	name        string
	processed   *atomic.Int64

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
// A nil invalidator disables cache invalidation.
func NewInMemoryWorker(queue Queue, store Store, invalidator Invalidator, opts ...Option) *InMemoryWorker {
	if invalidator == nil {
		invalidator = cache.Noop{}
	}
	w := &InMemoryWorker{
		queue:       queue,
		store:       store,
		invalidator: invalidator,
		name:        "worker",
		processed:   new(atomic.Int64),
		shutdown:    make(chan struct{}),
		done:        make(chan struct{}),
		logger:      logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.With(logger.String("worker", w.name))
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	updates := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if err := w.Process(ctx, u); err != nil {
				w.logger.Error(ctx, "error applying update",
					logger.String("update_id", u.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker and waits for Run to return.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Processed returns the number of updates this worker applied.
func (w *InMemoryWorker) Processed() int64 {
	return w.processed.Load()
}

// Process applies one update and invalidates the rankings it affects.
// User updates drop that user's project rankings; project updates drop every
// project ranking. Both drop every member ranking.
func (w *InMemoryWorker) Process(ctx context.Context, u Update) error { //nolint:gocritic // hugeParam: Update is passed by value for channel semantics
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	var (
		created  bool
		err      error
		prefixes []string
	)
	switch {
	case u.Kind == model.UpdateUser && u.User != nil:
		rec := *u.User
		if rec.TrustLevel == "" {
			rec.TrustLevel = model.TrustLevelForReputation(rec.ReputationScore)
		}
		created, err = w.store.UpsertUser(ctx, rec)
		prefixes = []string{cache.UserProjectsPrefix(rec.ID), cache.MembersPrefix}
	case u.Kind == model.UpdateProject && u.Project != nil:
		created, err = w.store.UpsertProject(ctx, *u.Project)
		prefixes = []string{cache.ProjectsPrefix, cache.MembersPrefix}
	default:
		err = fmt.Errorf("%w: kind %q", ErrMalformedUpdate, u.Kind)
	}
	if err != nil {
		metrics.RecordUpdateRejected(string(u.Kind))
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "apply_error")
		return fmt.Errorf("apply update %s: %w", u.ID, err)
	}

	metrics.RecordUpdateApplied(string(u.Kind))
	w.processed.Add(1)
	w.logger.Debug(ctx, "update applied",
		logger.String("update_id", u.ID),
		logger.String("kind", string(u.Kind)),
		logger.String("subject_id", u.SubjectID()),
		logger.Bool("created", created),
	)

	for _, prefix := range prefixes {
		if _, err := w.invalidator.DeletePrefix(ctx, prefix); err != nil {
			metrics.RecordErrorByComponent("worker", "cache_invalidation")
			w.logger.Warn(ctx, "cache invalidation failed",
				logger.String("prefix", prefix),
				logger.Error(err),
			)
		}
	}
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a new worker pool. workerCount < 1 selects a CPU based default.
func NewPool(workerCount int, queue Queue, store Store, invalidator Invalidator) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}
	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(queue, store, invalidator, WithName("worker-"+strconv.Itoa(i)))
	}
	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Processed returns the number of updates applied by all workers.
func (p *Pool) Processed() int64 {
	var n int64
	for _, w := range p.workers {
		n += w.Processed()
	}
	return n
}

// Shutdown closes the queue and lets the workers drain it. Workers still
// running when ctx (or the pool timeout) expires are stopped.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	drainCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut bool
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-drainCtx.Done():
			timedOut = true
			p.logger.Warn(ctx, "worker drain timed out", logger.Int("worker_id", i))
		}
		if timedOut {
			break
		}
	}
	if !timedOut {
		metrics.UpdateWorkerCount(0)
		return nil
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	var errs []error
	for _, w := range p.workers {
		if err := w.Shutdown(stopCtx); err != nil {
			errs = append(errs, err)
		}
	}
	metrics.UpdateWorkerCount(0)
	return errors.Join(errs...)
}
