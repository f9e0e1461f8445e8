// Package metrics provides Prometheus metrics for the countrydash service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the countrydash service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Record source
	fetchTotal   *prometheus.CounterVec
	fetchLatency prometheus.Histogram

	// Pipeline
	pipelineLatency *prometheus.HistogramVec
	invalidFilters  prometheus.Counter

	// Snapshot store
	repositorySnapshotRebuildDuration prometheus.Histogram
	repositorySnapshotLastUnix        prometheus.Gauge
	repositorySnapshotCount           prometheus.Counter
	repositorySnapshotLastDurationMs  prometheus.Gauge
	repositoryRecordsTotal            prometheus.Gauge
	repositoryQueryLatency            prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

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

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "countrydash",
		subsystem:        "service",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.fetchTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("source_fetch_total"),
		Help:        "Total number of record source fetches by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("source_fetch_latency_milliseconds"),
		Help:        "Latency of successful record source fetches in milliseconds",
		Buckets:     []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		ConstLabels: labels,
	})

	m.pipelineLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("pipeline_latency_milliseconds"),
		Help:        "Latency of filter, sort, aggregate and chart computations",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"operation"})

	m.invalidFilters = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("invalid_filter_total"),
		Help:        "Number of table requests rejected for an invalid population range",
		ConstLabels: labels,
	})

	m.repositorySnapshotRebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("repository_snapshot_rebuild_milliseconds"),
		Help:        "Time taken to publish a record snapshot",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.repositorySnapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("repository_snapshot_last_unix"),
		Help:        "Unix time of the last published snapshot",
		ConstLabels: labels,
	})

	m.repositorySnapshotCount = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("repository_snapshot_total"),
		Help:        "Number of snapshots published",
		ConstLabels: labels,
	})

	m.repositorySnapshotLastDurationMs = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("repository_snapshot_last_duration_milliseconds"),
		Help:        "Duration of the last snapshot publish",
		ConstLabels: labels,
	})

	m.repositoryRecordsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("repository_records_total"),
		Help:        "Number of country records in the current snapshot",
		ConstLabels: labels,
	})

	m.repositoryQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("repository_query_latency_milliseconds"),
		Help:        "Latency of snapshot reads",
		Buckets:     []float64{0.001, 0.01, 0.1, 1, 10},
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_component_total"),
		Help:        "Errors by component and type",
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_type_total"),
		Help:        "Errors by type and severity",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_endpoint_total"),
		Help:        "Errors by endpoint, method and type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("error_latency_milliseconds"),
		Help:        "Latency of operations that ended in an error",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// Enabled reports whether recording is switched on.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often gauges fed from polling should be updated.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func active() bool { return globalManager != nil && globalManager.enabled }

// Record source.

// RecordFetch counts one fetch with the given outcome ("ok" or "error").
func RecordFetch(outcome string) {
	if active() {
		globalManager.fetchTotal.WithLabelValues(outcome).Inc()
	}
}

// RecordFetchLatency records a successful fetch latency in milliseconds.
func RecordFetchLatency(latencyMs float64) {
	if active() {
		globalManager.fetchLatency.Observe(latencyMs)
	}
}

// Pipeline.

// RecordPipelineLatency records the duration of one pipeline operation.
func RecordPipelineLatency(operation string, latencyMs float64) {
	if active() {
		globalManager.pipelineLatency.WithLabelValues(operation).Observe(latencyMs)
	}
}

// RecordInvalidFilter counts a rejected population range.
func RecordInvalidFilter() {
	if active() {
		globalManager.invalidFilters.Inc()
	}
}

// Repository.

// RecordRepositorySnapshotRebuildDuration observes a snapshot publish duration.
func RecordRepositorySnapshotRebuildDuration(ms float64) {
	if active() {
		globalManager.repositorySnapshotRebuildDuration.Observe(ms)
	}
}

// UpdateRepositorySnapshotLastUnix sets the time of the last snapshot.
func UpdateRepositorySnapshotLastUnix(unix float64) {
	if active() {
		globalManager.repositorySnapshotLastUnix.Set(unix)
	}
}

// IncrementRepositorySnapshotCount counts a published snapshot.
func IncrementRepositorySnapshotCount() {
	if active() {
		globalManager.repositorySnapshotCount.Inc()
	}
}

// UpdateRepositorySnapshotLastDurationMs sets the last snapshot publish duration.
func UpdateRepositorySnapshotLastDurationMs(ms float64) {
	if active() {
		globalManager.repositorySnapshotLastDurationMs.Set(ms)
	}
}

// UpdateRepositoryRecordsTotal sets the number of records in the current snapshot.
func UpdateRepositoryRecordsTotal(count int) {
	if active() {
		globalManager.repositoryRecordsTotal.Set(float64(count))
	}
}

// RecordRepositoryQueryLatency records a snapshot read latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	if active() {
		globalManager.repositoryQueryLatency.Observe(latencyMs)
	}
}

// HTTP.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if active() {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if active() {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// Errors.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if active() {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if active() {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if active() {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if active() {
		globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
	}
}

// System.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if active() {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if active() {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if active() {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
