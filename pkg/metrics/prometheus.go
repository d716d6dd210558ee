// Package metrics provides Prometheus metrics for paddock batch runs.
//
// A batch run has no scrape endpoint, so the registry is dumped once at exit
// in the node-exporter textfile format (see WriteTextfile).
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for a paddock run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Upstream API metrics
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	upstreamErrors   *prometheus.CounterVec

	// Response cache metrics
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec

	// Output metrics
	artifactsWritten  *prometheus.CounterVec
	driversProcessed  prometheus.Counter
	scheduleSessions  prometheus.Gauge
	raceWindowResults *prometheus.CounterVec
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
		namespace:        "paddock",
		subsystem:        "batch",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_requests_total",
		Help:      "Upstream API requests by api, endpoint and status code",
	}, []string{"api", "endpoint", "status_code"})

	m.upstreamLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_request_duration_milliseconds",
		Help:      "Upstream API request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"api", "endpoint"})

	m.upstreamErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_errors_total",
		Help:      "Upstream API failures by api, endpoint and kind (transport, status, decode)",
	}, []string{"api", "endpoint", "kind"})

	m.cacheHits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Responses served from the on-disk response cache",
	}, []string{"api"})

	m.cacheMisses = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Cache lookups that fell through to the network",
	}, []string{"api"})

	m.artifactsWritten = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "artifacts_written_total",
		Help:      "JSON artifacts written by kind (schedule, drivers, stats)",
	}, []string{"kind"})

	m.driversProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "drivers_processed_total",
		Help:      "Drivers whose season and career stats were computed",
	})

	m.scheduleSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "schedule_sessions",
		Help:      "Number of race sessions in the last generated schedule",
	})

	m.raceWindowResults = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "race_window_results_total",
		Help:      "Race window resolutions by outcome",
	}, []string{"outcome"})
}

// RecordUpstreamRequest counts one upstream response.
func RecordUpstreamRequest(api, endpoint, statusCode string) {
	globalManager.upstreamRequests.WithLabelValues(api, endpoint, statusCode).Inc()
}

// RecordUpstreamLatency records upstream request duration in milliseconds.
func RecordUpstreamLatency(api, endpoint string, latencyMs float64) {
	globalManager.upstreamLatency.WithLabelValues(api, endpoint).Observe(latencyMs)
}

// RecordUpstreamError counts a failed upstream call.
func RecordUpstreamError(api, endpoint, kind string) {
	globalManager.upstreamErrors.WithLabelValues(api, endpoint, kind).Inc()
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit(api string) {
	globalManager.cacheHits.WithLabelValues(api).Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss(api string) {
	globalManager.cacheMisses.WithLabelValues(api).Inc()
}

// RecordArtifactWritten counts a written JSON artifact.
func RecordArtifactWritten(kind string) {
	globalManager.artifactsWritten.WithLabelValues(kind).Inc()
}

// RecordDriverProcessed increments the processed drivers counter.
func RecordDriverProcessed() {
	globalManager.driversProcessed.Inc()
}

// UpdateScheduleSessions sets the schedule size gauge.
func UpdateScheduleSessions(count int) {
	globalManager.scheduleSessions.Set(float64(count))
}

// RecordRaceWindowOutcome counts a race window resolution ("resolved" or an error kind).
func RecordRaceWindowOutcome(outcome string) {
	globalManager.raceWindowResults.WithLabelValues(outcome).Inc()
}

// GetRegistry returns the custom registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the registry to path in Prometheus text format.
// The file is written atomically by the client library.
func WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
