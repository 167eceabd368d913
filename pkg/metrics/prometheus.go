// Package metrics provides Prometheus metrics for the dragon boat balance service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Rejection reasons recorded by RecordBalanceRejection.
const (
	ReasonUnsupportedBoatSize = "unsupported_boat_size"
	ReasonBadRequest          = "bad_request"
)

// Manager manages all Prometheus metrics for the balance service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Core business metrics
	balanceComputations *prometheus.CounterVec
	balanceRejections   *prometheus.CounterVec
	computeLatency      prometheus.Histogram
	reportExports       *prometheus.CounterVec
	reportRenderLatency prometheus.Histogram
	reportErrors        prometheus.Counter

	// Roster
	rosterPaddlers prometheus.Gauge
	rosterSkipped  prometheus.Gauge

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

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
		namespace:        "dragonbalance",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval is how often runtime gauges should be sampled.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.balanceComputations = auto.NewCounterVec(
		m.counterOpts("balance_computations_total", "Total number of balance computations by boat size"),
		[]string{"boat_size"},
	)
	m.balanceRejections = auto.NewCounterVec(
		m.counterOpts("balance_rejections_total", "Total number of rejected balance requests by reason"),
		[]string{"reason"},
	)
	m.computeLatency = auto.NewHistogram(
		m.histogramOpts("balance_compute_latency_milliseconds", "Balance computation latency in milliseconds",
			[]float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10}),
	)
	m.reportExports = auto.NewCounterVec(
		m.counterOpts("report_exports_total", "Total number of PDF reports exported by language"),
		[]string{"lang"},
	)
	m.reportRenderLatency = auto.NewHistogram(
		m.histogramOpts("report_render_duration_milliseconds", "PDF report render duration in milliseconds",
			[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
	m.reportErrors = auto.NewCounter(
		m.counterOpts("report_errors_total", "Total number of failed PDF renders"),
	)

	m.rosterPaddlers = auto.NewGauge(
		m.gaugeOpts("roster_paddlers", "Number of paddlers in the loaded roster"),
	)
	m.rosterSkipped = auto.NewGauge(
		m.gaugeOpts("roster_skipped_rows", "Number of roster rows skipped at load time"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordBalanceComputation counts a successful computation for a boat size.
func RecordBalanceComputation(boatSize int) {
	globalManager.balanceComputations.WithLabelValues(strconv.Itoa(boatSize)).Inc()
}

// RecordBalanceRejection counts a request refused before computing.
func RecordBalanceRejection(reason string) {
	globalManager.balanceRejections.WithLabelValues(reason).Inc()
}

// RecordComputeLatency records computation latency in milliseconds.
func RecordComputeLatency(latencyMs float64) {
	globalManager.computeLatency.Observe(latencyMs)
}

// RecordReportExport counts an exported report.
func RecordReportExport(lang string) {
	globalManager.reportExports.WithLabelValues(lang).Inc()
}

// RecordReportRenderDuration records report render time in milliseconds.
func RecordReportRenderDuration(latencyMs float64) {
	globalManager.reportRenderLatency.Observe(latencyMs)
}

// RecordReportError counts a failed render.
func RecordReportError() {
	globalManager.reportErrors.Inc()
}

// UpdateRosterSize sets the roster gauges.
func UpdateRosterSize(paddlers, skipped int) {
	globalManager.rosterPaddlers.Set(float64(paddlers))
	globalManager.rosterSkipped.Set(float64(skipped))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

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

// RefreshInterval returns the sampling interval of the global manager.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
