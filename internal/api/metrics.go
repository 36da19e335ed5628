package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks hierarchy transformation and request handling.
type Metrics struct {
	TransformsTotal   prometheus.Counter
	TransformDuration prometheus.Histogram
	RequestsTotal     *prometheus.CounterVec
}

// NewMetrics creates and registers the API metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TransformsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "netatlas_transforms_total",
			Help: "Total number of graph-to-hierarchy transformations.",
		}),
		TransformDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "netatlas_transform_duration_seconds",
			Help:    "Duration of graph-to-hierarchy transformations.",
			Buckets: prometheus.DefBuckets,
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "netatlas_http_requests_total",
			Help: "Total number of HTTP requests by path and status code.",
		}, []string{"path", "status"}),
	}
}
