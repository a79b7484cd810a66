// Package metrics provides Prometheus metrics for the buildermatch service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// candidateBuckets covers the realistic candidate counts per ranking call.
var candidateBuckets = []float64{0, 1, 5, 10, 20, 50, 100, 250, 500, 1000} //nolint:gochecknoglobals // bucket layout

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Matching
	matchRankings    *prometheus.CounterVec
	matchCandidates  *prometheus.HistogramVec
	matchResults     *prometheus.HistogramVec
	matchesComputed  prometheus.Counter
	rankingLatency   *prometheus.HistogramVec
	matchNotFound    *prometheus.CounterVec
	cacheRequests    *prometheus.CounterVec
	cacheInvalidated prometheus.Counter

	// Ingestion
	updatesApplied   *prometheus.CounterVec
	updatesDuplicate prometheus.Counter
	updatesRejected  *prometheus.CounterVec
	storedUsers      prometheus.Gauge
	storedProjects   prometheus.Gauge

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Workers
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager registered on the configured registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "buildermatch",
		subsystem:        "matching",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets,
	})
}

func (m *Manager) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	m.matchRankings = m.counterVec("rankings_total", "Ranking calls by kind (projects, members)", "kind")
	m.matchCandidates = m.histogramVec("ranking_candidates", "Candidates scored per ranking call", candidateBuckets, "kind")
	m.matchResults = m.histogramVec("ranking_results", "Results returned per ranking call", candidateBuckets, "kind")
	m.matchesComputed = m.counter("matches_computed_total", "Total user/project pairs scored")
	m.rankingLatency = m.histogramVec("ranking_latency_milliseconds", "End to end ranking latency in milliseconds", m.histogramBuckets, "kind", "source")
	m.matchNotFound = m.counterVec("ranking_subject_not_found_total", "Ranking requests for unknown users or projects", "kind")
	m.cacheRequests = m.counterVec("cache_requests_total", "Match cache lookups by outcome (hit, miss, error)", "outcome")
	m.cacheInvalidated = m.counter("cache_invalidations_total", "Match cache invalidations triggered by updates")

	m.updatesApplied = m.counterVec("updates_applied_total", "Profile and project updates applied to the store", "kind")
	m.updatesDuplicate = m.counter("updates_duplicate_total", "Updates dropped as duplicates")
	m.updatesRejected = m.counterVec("updates_rejected_total", "Updates rejected by the store", "reason")
	m.storedUsers = m.gauge("stored_users", "Users held by the store")
	m.storedProjects = m.gauge("stored_projects", "Projects held by the store")

	m.queueSize = m.gauge("queue_size", "Current size of the update queue")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum capacity of the update queue")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue size divided by capacity")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Updates enqueued")
	m.queueDequeued = m.counter("queue_dequeued_total", "Updates dequeued")
	m.queueEnqueueErrors = m.counterVec("queue_enqueue_errors_total", "Enqueue failures by reason", "reason")

	m.workerCount = m.gauge("worker_count", "Update workers running")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Time to apply one update", m.histogramBuckets)
	m.workerErrors = m.counter("worker_errors_total", "Updates a worker failed to apply")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method and status", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds",
		m.histogramBuckets, "endpoint", "method", "status_code")
	m.httpRateLimited = m.counterVec("http_rate_limited_total", "Requests rejected by the rate limiter", "endpoint")

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "HTTP errors by endpoint, method and type", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "Average GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// Matching metrics.

// RecordMatchRanking records one ranking call over candidates producing results.
func RecordMatchRanking(kind string, candidates, results int) {
	globalManager.matchRankings.WithLabelValues(kind).Inc()
	globalManager.matchCandidates.WithLabelValues(kind).Observe(float64(candidates))
	globalManager.matchResults.WithLabelValues(kind).Observe(float64(results))
	globalManager.matchesComputed.Add(float64(candidates))
}

// RecordRankingLatency records ranking latency; source is "cache" or "engine".
func RecordRankingLatency(kind, source string, latencyMs float64) {
	globalManager.rankingLatency.WithLabelValues(kind, source).Observe(latencyMs)
}

// RecordSubjectNotFound counts ranking requests for unknown subjects.
func RecordSubjectNotFound(kind string) {
	globalManager.matchNotFound.WithLabelValues(kind).Inc()
}

// RecordCacheHit counts a match cache hit.
func RecordCacheHit() { globalManager.cacheRequests.WithLabelValues("hit").Inc() }

// RecordCacheMiss counts a match cache miss.
func RecordCacheMiss() { globalManager.cacheRequests.WithLabelValues("miss").Inc() }

// RecordCacheError counts a failed cache operation.
func RecordCacheError() { globalManager.cacheRequests.WithLabelValues("error").Inc() }

// RecordCacheInvalidation counts an invalidation pass.
func RecordCacheInvalidation() { globalManager.cacheInvalidated.Inc() }

// Ingestion metrics.

// RecordUpdateApplied counts an update of kind written to the store.
func RecordUpdateApplied(kind string) {
	globalManager.updatesApplied.WithLabelValues(kind).Inc()
}

// RecordUpdateDuplicate counts an update dropped by the deduper.
func RecordUpdateDuplicate() {
	globalManager.updatesDuplicate.Inc()
}

// RecordUpdateRejected counts an update the store refused.
func RecordUpdateRejected(reason string) {
	globalManager.updatesRejected.WithLabelValues(reason).Inc()
}

// UpdateStoredCounts sets the store size gauges.
func UpdateStoredCounts(users, projects int) {
	globalManager.storedUsers.Set(float64(users))
	globalManager.storedProjects.Set(float64(projects))
}

// Queue metrics.

// UpdateQueueSize sets the current queue size and utilization.
func UpdateQueueSize(size, capacity int) {
	globalManager.queueSize.Set(float64(size))
	if capacity > 0 {
		globalManager.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError counts an enqueue failure.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// Worker metrics.

// UpdateWorkerCount sets the number of running workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records the time to apply one update.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System metrics.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
