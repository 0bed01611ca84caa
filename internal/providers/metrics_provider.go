package providers

import (
	"abconfig/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncSyncTotal(configType string, outcome string)
	ObserveLoadDuration(configType string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	SetConfigsReady(count int)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	syncTotal       *prometheus.CounterVec
	loadDuration    *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	configsReady    prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSyncTotal(configType string, outcome string) {
	m.syncTotal.WithLabelValues(configType, outcome).Inc()
}

func (m *MetricsProvider) ObserveLoadDuration(configType string, duration time.Duration) {
	m.loadDuration.WithLabelValues(configType).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) SetConfigsReady(count int) {
	m.configsReady.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "abconfig_requests_total",
			Help: "Total number of HTTP requests to the status listener",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "abconfig_request_duration_seconds",
			Help:    "Status listener request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		syncTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "abconfig_sync_total",
			Help: "Total number of config sync attempts by outcome",
		}, []string{"config", "outcome"}),

		loadDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "abconfig_load_duration_seconds",
			Help:    "Remote config load duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"config"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "abconfig_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "abconfig_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		configsReady: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "abconfig_configs_ready",
			Help: "Number of configs whose sync attempt has concluded",
		}),
	}
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncSyncTotal(_ string, _ string)                   {}
func (n *noopMetrics) ObserveLoadDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) SetConfigsReady(_ int)                             {}
