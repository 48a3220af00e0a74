package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"rockbot/internal/structures"
	"strconv"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncGuesses(correct bool)
	IncRounds(event string)
	SetCatalogSize(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	guessesTotal        *prometheus.CounterVec
	roundsTotal         *prometheus.CounterVec
	catalogSize         prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncGuesses(correct bool) {
	m.guessesTotal.WithLabelValues(strconv.FormatBool(correct)).Inc()
}

func (m *MetricsProvider) IncRounds(event string) {
	m.roundsTotal.WithLabelValues(event).Inc()
}

func (m *MetricsProvider) SetCatalogSize(count int) {
	m.catalogSize.Set(float64(count))
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
			Name: "rockbot_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rockbot_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rockbot_image_cache_hits_total",
			Help: "Total number of image cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rockbot_image_cache_misses_total",
			Help: "Total number of image cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rockbot_persistence_duration_seconds",
			Help:    "Duration of stats persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		guessesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rockbot_guesses_total",
			Help: "Total number of evaluated guesses",
		}, []string{"correct"}),

		roundsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rockbot_round_events_total",
			Help: "Round transitions by event",
		}, []string{"event"}),

		catalogSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "rockbot_catalog_entries",
			Help: "Number of entries in the active catalog",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncGuesses(_ bool)                                {}
func (n *noopMetrics) IncRounds(_ string)                               {}
func (n *noopMetrics) SetCatalogSize(_ int)                             {}
