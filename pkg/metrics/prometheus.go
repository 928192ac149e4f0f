// Package metrics provides Prometheus metrics for the inputtrail capture pipeline.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector used by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Capture
	eventsCaptured *prometheus.CounterVec
	eventsIgnored  prometheus.Counter

	// Durable sink
	sinkRowsWritten  prometheus.Counter
	sinkBytesWritten prometheus.Counter
	sinkWriteLatency prometheus.Histogram
	sinkErrors       *prometheus.CounterVec

	// Relay
	relayDepth   prometheus.Gauge
	relaySent    prometheus.Counter
	relayDropped *prometheus.CounterVec

	// Observer
	observerDrains    prometheus.Counter
	observerDrainSize prometheus.Histogram
	viewEntries       prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorRateByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var (
	globalManager  atomic.Pointer[Manager]     //nolint:gochecknoglobals // process-wide metrics singleton
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager.Store(NewManager(WithPrometheusRegistry(customRegistry)))
}

// NewManager creates a new metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "inputtrail",
		subsystem:        "capture",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 25, 50, 100},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// Use installs m as the manager behind the package-level helpers.
func Use(m *Manager) error {
	if m == nil {
		return ErrNilManager
	}
	globalManager.Store(m)
	return nil
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
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.eventsCaptured = auto.NewCounterVec(
		m.counterOpts("events_captured_total", "Records produced by the normalizer, by event type"),
		[]string{"event_type"},
	)
	m.eventsIgnored = auto.NewCounter(
		m.counterOpts("events_ignored_total", "Raw platform events with no record (wheel, typed, unknown)"),
	)

	m.sinkRowsWritten = auto.NewCounter(
		m.counterOpts("sink_rows_written_total", "Rows appended to the durable log"),
	)
	m.sinkBytesWritten = auto.NewCounter(
		m.counterOpts("sink_bytes_written_total", "Bytes appended to the durable log"),
	)
	m.sinkWriteLatency = auto.NewHistogram(
		m.histogramOpts("sink_write_latency_milliseconds", "Write+flush+sync latency per row", m.histogramBuckets),
	)
	m.sinkErrors = auto.NewCounterVec(
		m.counterOpts("sink_errors_total", "Durable log failures by operation"),
		[]string{"op"},
	)

	m.relayDepth = auto.NewGauge(
		m.gaugeOpts("relay_depth", "Display strings queued for the observer"),
	)
	m.relaySent = auto.NewCounter(
		m.counterOpts("relay_sent_total", "Display strings accepted by the relay"),
	)
	m.relayDropped = auto.NewCounterVec(
		m.counterOpts("relay_dropped_total", "Display strings discarded at the send site"),
		[]string{"reason"},
	)

	m.observerDrains = auto.NewCounter(
		m.counterOpts("observer_drains_total", "Observer refresh ticks that polled the relay"),
	)
	m.observerDrainSize = auto.NewHistogram(
		m.histogramOpts("observer_drain_size", "Display strings received per drain", []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000}),
	)
	m.viewEntries = auto.NewGauge(
		m.gaugeOpts("view_entries", "Display strings held by the rolling view"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "Average GC pause in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

func current() *Manager {
	return globalManager.Load()
}

// Capture Metrics Functions.

// RecordEventCaptured increments the captured counter for one event type.
func RecordEventCaptured(eventType string) {
	current().eventsCaptured.WithLabelValues(eventType).Inc()
}

// RecordEventIgnored increments the ignored raw event counter.
func RecordEventIgnored() {
	current().eventsIgnored.Inc()
}

// Sink Metrics Functions.

// RecordSinkWrite records one appended row.
func RecordSinkWrite(bytes int, latencyMs float64) {
	m := current()
	m.sinkRowsWritten.Inc()
	m.sinkBytesWritten.Add(float64(bytes))
	m.sinkWriteLatency.Observe(latencyMs)
}

// RecordSinkError records a failed sink operation (open, write, flush, sync).
func RecordSinkError(op string) {
	current().sinkErrors.WithLabelValues(op).Inc()
}

// Relay Metrics Functions.

// UpdateRelayDepth sets the number of queued display strings.
func UpdateRelayDepth(depth int) {
	current().relayDepth.Set(float64(depth))
}

// RecordRelaySend increments the accepted send counter.
func RecordRelaySend() {
	current().relaySent.Inc()
}

// RecordRelayDrop increments the dropped counter for a reason
// ("disconnected" or "full").
func RecordRelayDrop(reason string) {
	current().relayDropped.WithLabelValues(reason).Inc()
}

// Observer Metrics Functions.

// RecordObserverDrain records one refresh-tick drain of n strings.
func RecordObserverDrain(n int) {
	m := current()
	m.observerDrains.Inc()
	m.observerDrainSize.Observe(float64(n))
}

// UpdateViewEntries sets the number of entries held by the rolling view.
func UpdateViewEntries(n int) {
	current().viewEntries.Set(float64(n))
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	current().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	current().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	current().errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	current().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	current().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	current().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
