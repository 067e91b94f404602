// Package metrics provides Prometheus metrics for the mindscan service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector used by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Assessment metrics
	assessments        *prometheus.CounterVec
	assessmentFailures *prometheus.CounterVec
	assessmentLatency  prometheus.Histogram
	channelFallbacks   *prometheus.CounterVec
	channelLatency     *prometheus.HistogramVec
	fusionRegimes      *prometheus.CounterVec
	alerts             *prometheus.CounterVec
	modelReady         prometheus.Gauge

	// Text cache
	textCacheHits   prometheus.Counter
	textCacheMisses prometheus.Counter

	// Audit pipeline
	auditWritten  prometheus.Counter
	auditDropped  prometheus.Counter
	auditFailed   prometheus.Counter
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	workerCount   prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry served by /healthz

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mindscan",
		subsystem:        "assessment",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collectors
	auto := promauto.With(m.registry)

	m.assessments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "completed_total",
		Help:      "Completed assessments by stress and depression level",
	}, []string{"stress_level", "depression_level", "strategy"})

	m.assessmentFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "failed_total",
		Help:      "Assessments rejected or failed, by kind",
	}, []string{"kind"})

	m.assessmentLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "latency_milliseconds",
		Help:      "End-to-end assessment latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.channelFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "channel_fallbacks_total",
		Help:      "Channel scores replaced by a neutral default",
	}, []string{"channel", "reason"})

	m.channelLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "channel_latency_milliseconds",
		Help:      "Per-channel scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"channel"})

	m.fusionRegimes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fusion_regime_total",
		Help:      "Fusion weight regime selections",
	}, []string{"regime"})

	m.alerts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "alerts_total",
		Help:      "Alerts raised by recipient",
	}, []string{"recipient"})

	m.modelReady = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "behavior_model_ready",
		Help:      "1 when the behavior regressor is trained",
	})

	m.textCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "text_cache_hits_total",
		Help:      "Text scores served from cache",
	})

	m.textCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "text_cache_misses_total",
		Help:      "Text scores computed by the backend",
	})

	m.auditWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_records_written_total",
		Help:      "Audit records persisted to the stress log",
	})

	m.auditDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_records_dropped_total",
		Help:      "Audit records dropped because the queue was full or closed",
	})

	m.auditFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_records_failed_total",
		Help:      "Audit records the sink failed to persist",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_queue_size",
		Help:      "Current audit queue backlog",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_queue_capacity",
		Help:      "Audit queue capacity",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_worker_count",
		Help:      "Running audit workers",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "HTTP errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordAssessment counts a completed assessment.
func RecordAssessment(stressLevel, depressionLevel, strategy string) {
	globalManager.assessments.WithLabelValues(stressLevel, depressionLevel, strategy).Inc()
}

// RecordAssessmentFailure counts a failed assessment of the given kind.
func RecordAssessmentFailure(kind string) {
	globalManager.assessmentFailures.WithLabelValues(kind).Inc()
}

// RecordAssessmentLatency records end-to-end latency in milliseconds.
func RecordAssessmentLatency(latencyMs float64) {
	globalManager.assessmentLatency.Observe(latencyMs)
}

// RecordChannelFallback counts a neutral-default substitution.
func RecordChannelFallback(channel, reason string) {
	globalManager.channelFallbacks.WithLabelValues(channel, reason).Inc()
}

// RecordChannelLatency records one channel's scoring latency in milliseconds.
func RecordChannelLatency(channel string, latencyMs float64) {
	globalManager.channelLatency.WithLabelValues(channel).Observe(latencyMs)
}

// RecordFusionRegime counts a weight regime selection.
func RecordFusionRegime(regime string) {
	globalManager.fusionRegimes.WithLabelValues(regime).Inc()
}

// RecordAlert counts an alert for recipient ("counselor" or "proctor").
func RecordAlert(recipient string) {
	globalManager.alerts.WithLabelValues(recipient).Inc()
}

// SetModelReady flags whether the behavior model is trained.
func SetModelReady(ready bool) {
	if ready {
		globalManager.modelReady.Set(1)
		return
	}
	globalManager.modelReady.Set(0)
}

// RecordTextCacheHit counts a text cache hit.
func RecordTextCacheHit() {
	globalManager.textCacheHits.Inc()
}

// RecordTextCacheMiss counts a text cache miss.
func RecordTextCacheMiss() {
	globalManager.textCacheMisses.Inc()
}

// RecordAuditWritten counts a persisted audit record.
func RecordAuditWritten() {
	globalManager.auditWritten.Inc()
}

// RecordAuditDropped counts an audit record that never reached the queue.
func RecordAuditDropped() {
	globalManager.auditDropped.Inc()
}

// RecordAuditFailed counts an audit record the sink rejected.
func RecordAuditFailed() {
	globalManager.auditFailed.Inc()
}

// UpdateQueueSize sets the audit queue backlog.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the audit queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateWorkerCount sets the number of running audit workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an HTTP error.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

var runtimeOnce sync.Once //nolint:gochecknoglobals // guards collector registration

// RegisterRuntimeCollectors adds the Go runtime and process collectors to the
// service registry. Repeated calls are no-ops.
func RegisterRuntimeCollectors() {
	runtimeOnce.Do(func() {
		customRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}

// GetRegistry returns the registry holding the service metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
