// Package metrics provides Prometheus metrics for the hiring dashboard
// service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Remote table traffic
	sheetCalls        *prometheus.CounterVec
	sheetCallDuration *prometheus.HistogramVec
	sheetRetries      *prometheus.CounterVec

	// Snapshot cache behavior
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	cacheInvalidations *prometheus.CounterVec

	// Business state
	applicantCount *prometheus.GaugeVec
	lastSyncUnix   prometheus.Gauge
	moveConflicts  prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Process health
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hiring",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.sheetCalls = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sheet_calls_total",
		Help:      "Remote spreadsheet API calls by operation and outcome.",
	}, []string{"op", "status"})

	m.sheetCallDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sheet_call_duration_seconds",
		Help:      "Latency of remote spreadsheet API calls.",
		Buckets:   m.histogramBuckets,
	}, []string{"op"})

	m.sheetRetries = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sheet_retries_total",
		Help:      "Retried spreadsheet calls after connectivity failures.",
	}, []string{"op"})

	m.cacheHits = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Snapshot reads served from the in-memory cache.",
	}, []string{"worksheet"})

	m.cacheMisses = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Snapshot reads that required a remote fetch.",
	}, []string{"worksheet"})

	m.cacheInvalidations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_invalidations_total",
		Help:      "Cache entries dropped after writes or manual refresh.",
	}, []string{"worksheet"})

	m.applicantCount = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "applicants",
		Help:      "Applicants in the last fetched snapshot per worksheet.",
	}, []string{"worksheet"})

	m.lastSyncUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_sync_timestamp_seconds",
		Help:      "Unix time of the most recent successful remote fetch.",
	})

	m.moveConflicts = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "move_conflicts_total",
		Help:      "Moves whose post-write verification found a row-count mismatch.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by endpoint and method.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation of the process.",
	})

	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines.",
	})
}

// RecordSheetCall records one remote spreadsheet call.
func RecordSheetCall(op string, d time.Duration, err error) {
	if !globalManager.enabled {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	globalManager.sheetCalls.WithLabelValues(op, status).Inc()
	globalManager.sheetCallDuration.WithLabelValues(op).Observe(d.Seconds())
}

// RecordSheetRetry records a retried spreadsheet call.
func RecordSheetRetry(op string) {
	if globalManager.enabled {
		globalManager.sheetRetries.WithLabelValues(op).Inc()
	}
}

// RecordCacheHit records a snapshot read served from cache.
func RecordCacheHit(worksheet string) {
	if globalManager.enabled {
		globalManager.cacheHits.WithLabelValues(worksheet).Inc()
	}
}

// RecordCacheMiss records a snapshot read that went remote.
func RecordCacheMiss(worksheet string) {
	if globalManager.enabled {
		globalManager.cacheMisses.WithLabelValues(worksheet).Inc()
	}
}

// RecordCacheInvalidation records a dropped cache entry.
func RecordCacheInvalidation(worksheet string) {
	if globalManager.enabled {
		globalManager.cacheInvalidations.WithLabelValues(worksheet).Inc()
	}
}

// UpdateApplicantCount sets the snapshot size gauge for a worksheet.
func UpdateApplicantCount(worksheet string, n int) {
	if globalManager.enabled {
		globalManager.applicantCount.WithLabelValues(worksheet).Set(float64(n))
	}
}

// UpdateLastSync sets the last successful remote fetch time.
func UpdateLastSync(t time.Time) {
	if globalManager.enabled {
		globalManager.lastSyncUnix.Set(float64(t.Unix()))
	}
}

// RecordMoveConflict records a failed post-move row-count verification.
func RecordMoveConflict() {
	if globalManager.enabled {
		globalManager.moveConflicts.Inc()
	}
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method string, d time.Duration) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(d.Seconds())
	}
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// GetRegistry returns the registry backing the global manager, for exposure
// via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
