// Package metrics provides Prometheus metrics for the discrepancy detection service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Cycle metrics
	cyclesTotal   prometheus.Counter
	cycleDuration prometheus.Histogram
	cycleErrors   prometheus.Counter

	// News metrics
	newsFetched   prometheus.Counter
	newsEvicted   prometheus.Counter
	newsCacheSize prometheus.Gauge

	// Market metrics
	marketsRefreshed       prometheus.Counter
	marketValidationErrors prometheus.Counter
	marketCacheSize        prometheus.Gauge
	marketsStale           prometheus.Gauge

	// Reasoning metrics
	assessmentsTotal *prometheus.CounterVec // by source: primary|fallback

	// Detection and alert metrics
	opportunitiesTotal prometheus.Counter
	alertsTotal        *prometheus.CounterVec // by severity
	alertsSuppressed   prometheus.Counter
	alertHistorySize   prometheus.Gauge
	cooldownsActive    prometheus.Gauge

	// Collaborator metrics
	providerErrors *prometheus.CounterVec // by provider: news|market|reasoning|notify|journal

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "arbitrage",
		subsystem:        "detector",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.cyclesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycles_total",
		Help:      "Total number of completed detection cycles",
	})

	m.cycleDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycle_duration_seconds",
		Help:      "Histogram of full detection cycle duration in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.cycleErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycle_errors_total",
		Help:      "Total number of recoverable errors absorbed during cycles",
	})

	m.newsFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "news_fetched_total",
		Help:      "Total number of news items ingested into the cache",
	})

	m.newsEvicted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "news_evicted_total",
		Help:      "Total number of news items evicted by TTL or capacity",
	})

	m.newsCacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "news_cache_size",
		Help:      "Current number of news items in the cache",
	})

	m.marketsRefreshed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "markets_refreshed_total",
		Help:      "Total number of market snapshots upserted",
	})

	m.marketValidationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "market_validation_errors_total",
		Help:      "Total number of market snapshots rejected by price validation",
	})

	m.marketCacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "market_cache_size",
		Help:      "Current number of markets in the cache",
	})

	m.marketsStale = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "markets_stale",
		Help:      "Number of cached markets currently older than their TTL",
	})

	m.assessmentsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessments_total",
		Help:      "Total number of impact assessments by reasoning source",
	}, []string{"source"})

	m.opportunitiesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "opportunities_total",
		Help:      "Total number of opportunities that cleared the detector gates",
	})

	m.alertsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "alerts_total",
		Help:      "Total number of emitted alerts by severity",
	}, []string{"severity"})

	m.alertsSuppressed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "alerts_suppressed_total",
		Help:      "Total number of alerts suppressed by the per-market cooldown",
	})

	m.alertHistorySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "alert_history_size",
		Help:      "Current number of alerts retained in memory",
	})

	m.cooldownsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cooldowns_active",
		Help:      "Number of markets currently inside their alert cooldown window",
	})

	m.providerErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "provider_errors_total",
		Help:      "Total number of recoverable collaborator failures by provider",
	}, []string{"provider"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// Handler returns an http.Handler serving the custom registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// Package-level helpers on the global manager.

func RecordCycle(durationSeconds float64) {
	globalManager.cyclesTotal.Inc()
	globalManager.cycleDuration.Observe(durationSeconds)
}

func RecordCycleError()              { globalManager.cycleErrors.Inc() }
func RecordNewsFetched(n int)        { globalManager.newsFetched.Add(float64(n)) }
func RecordNewsEvicted(n int)        { globalManager.newsEvicted.Add(float64(n)) }
func UpdateNewsCacheSize(n int)      { globalManager.newsCacheSize.Set(float64(n)) }
func RecordMarketRefreshed()         { globalManager.marketsRefreshed.Inc() }
func RecordMarketValidationError()   { globalManager.marketValidationErrors.Inc() }
func UpdateMarketCacheSize(n int)    { globalManager.marketCacheSize.Set(float64(n)) }
func UpdateMarketsStale(n int)       { globalManager.marketsStale.Set(float64(n)) }
func RecordAssessment(source string) { globalManager.assessmentsTotal.WithLabelValues(source).Inc() }
func RecordOpportunity()             { globalManager.opportunitiesTotal.Inc() }
func RecordAlert(severity string)    { globalManager.alertsTotal.WithLabelValues(severity).Inc() }
func RecordAlertSuppressed()         { globalManager.alertsSuppressed.Inc() }
func UpdateAlertHistorySize(n int)   { globalManager.alertHistorySize.Set(float64(n)) }
func UpdateCooldownsActive(n int)    { globalManager.cooldownsActive.Set(float64(n)) }
func RecordProviderError(provider string) {
	globalManager.providerErrors.WithLabelValues(provider).Inc()
}

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}
