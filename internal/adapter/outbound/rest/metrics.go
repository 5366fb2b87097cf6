package rest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the request pipeline.
type Metrics struct {
	RequestsTotal        *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	BusinessFailures     *prometheus.CounterVec
	SessionInvalidations prometheus.Counter
	CacheHits            prometheus.Counter
	CacheMisses          prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the given
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sparkhub",
				Name:      "requests_total",
				Help:      "Total API requests dispatched",
			},
			[]string{"method", "status"}, // status=HTTP code or network_error
		),
		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sparkhub",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		BusinessFailures: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sparkhub",
				Name:      "business_failures_total",
				Help:      "Envelope-level failures by business code",
			},
			[]string{"code"},
		),
		SessionInvalidations: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "sparkhub",
				Name:      "session_invalidations_total",
				Help:      "Times the backend declared the session stale",
			},
		),
		CacheHits: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "sparkhub",
				Name:      "read_cache_hits_total",
				Help:      "GET responses served from the read cache",
			},
		),
		CacheMisses: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "sparkhub",
				Name:      "read_cache_misses_total",
				Help:      "GET requests that went to the backend",
			},
		),
	}
}
