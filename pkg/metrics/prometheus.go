// Package metrics provides Prometheus metrics for the ClassPulse
// feedback widget.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the widget.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core Business Metrics - submission flow
	submissions prometheus.Counter
	rejections  *prometheus.CounterVec

	// Navigation Metrics - screen and stat card activity
	viewTransitions *prometheus.CounterVec
	cardActivations *prometheus.CounterVec
	searches        prometheus.Counter

	// State Metrics - log and roster scale
	storedFeedback   prometheus.Gauge
	rosterSize       prometheus.Gauge
	sessionStartUnix prometheus.Gauge

	// Latency Metrics - log access and derived views
	appendLatency  prometheus.Histogram
	queryLatency   prometheus.Histogram
	renderLatency  prometheus.Histogram
	summaryRebuild prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "classpulse",
		subsystem:        "widget",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics - submission flow
	m.submissions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feedback_submitted_total",
		Help:      "Total number of reviews accepted into the feedback log",
	})

	m.rejections = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "feedback_rejected_total",
			Help:      "Total number of submissions rejected by validation, by reason",
		},
		[]string{"reason"},
	)

	// Navigation Metrics - screen and stat card activity
	m.viewTransitions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "view_transitions_total",
			Help:      "Total number of screen transitions, by destination",
		},
		[]string{"to"},
	)

	m.cardActivations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stat_card_activations_total",
			Help:      "Total number of stat card activations, by card",
		},
		[]string{"card"},
	)

	m.searches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_searches_total",
		Help:      "Total number of search queries applied to the roster",
	})

	// State Metrics - log and roster scale
	m.storedFeedback = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feedback_entries",
		Help:      "Current number of entries in the feedback log",
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_teachers",
		Help:      "Number of teachers on the seeded roster",
	})

	m.sessionStartUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_start_unix",
		Help:      "Unix timestamp of the current session start",
	})

	// Latency Metrics - log access and derived views
	m.appendLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "log_append_latency_milliseconds",
		Help:      "Feedback log append latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.queryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "log_query_latency_milliseconds",
		Help:      "Feedback log query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.renderLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_latency_milliseconds",
		Help:      "Screen render latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.summaryRebuild = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "summary_rebuilds_total",
		Help:      "Total number of rating summary cache rebuilds",
	})
}

// RecordSubmission increments the accepted submissions counter.
func RecordSubmission() {
	globalManager.submissions.Inc()
}

// RecordRejection increments the rejected submissions counter for a
// validation reason.
func RecordRejection(reason string) {
	globalManager.rejections.WithLabelValues(reason).Inc()
}

// RecordViewTransition increments the transition counter for a
// destination screen.
func RecordViewTransition(to string) {
	globalManager.viewTransitions.WithLabelValues(to).Inc()
}

// RecordCardActivation increments the activation counter for a stat card.
func RecordCardActivation(card string) {
	globalManager.cardActivations.WithLabelValues(card).Inc()
}

// RecordSearch increments the roster search counter.
func RecordSearch() {
	globalManager.searches.Inc()
}

// UpdateStoredFeedback sets the current feedback log size.
func UpdateStoredFeedback(count int) {
	globalManager.storedFeedback.Set(float64(count))
}

// UpdateRosterSize sets the roster size gauge.
func UpdateRosterSize(count int) {
	globalManager.rosterSize.Set(float64(count))
}

// UpdateSessionStart sets the session start timestamp gauge.
func UpdateSessionStart(unix float64) {
	globalManager.sessionStartUnix.Set(unix)
}

// RecordAppendLatency records feedback log append latency.
func RecordAppendLatency(latencyMs float64) {
	globalManager.appendLatency.Observe(latencyMs)
}

// RecordQueryLatency records feedback log query latency.
func RecordQueryLatency(latencyMs float64) {
	globalManager.queryLatency.Observe(latencyMs)
}

// RecordRenderLatency records screen render latency.
func RecordRenderLatency(latencyMs float64) {
	globalManager.renderLatency.Observe(latencyMs)
}

// RecordSummaryRebuild increments the summary cache rebuild counter.
func RecordSummaryRebuild() {
	globalManager.summaryRebuild.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
