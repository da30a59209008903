package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yasp_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yasp_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	documentsOpenedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "yasp_documents_opened_total",
			Help: "Total number of documents successfully opened.",
		},
	)
	parseFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "yasp_parse_failures_total",
			Help: "Total number of document parse failures.",
		},
	)
	valueUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "yasp_value_updates_total",
			Help: "Total number of successful path mutations.",
		},
	)
	diffRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yasp_diff_requests_total",
			Help: "Total number of diff computations.",
		},
		[]string{"strategy"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		documentsOpenedTotal,
		parseFailuresTotal,
		valueUpdatesTotal,
		diffRequestsTotal,
	)
}

// RegisterOpenDocumentsGauge registers a gauge tracking currently open documents.
func RegisterOpenDocumentsGauge(countFn func() float64) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "yasp_open_documents",
			Help: "Number of currently open documents.",
		},
		countFn,
	))
}

// MetricsHandler returns the Prometheus metrics HTTP handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
