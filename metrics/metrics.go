// Package metrics provides Prometheus metrics for the report builder.
// HTTP traffic is tracked by route pattern, and the extraction pipeline
// records which sections and values each report yielded, so silent
// mismatches against the vendor layout show up on a dashboard.
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (clients seen recently)",
		},
	)

	ReportsRenderedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmr_reports_rendered_total",
			Help: "Reports rendered, by output format",
		},
		[]string{"format"},
	)

	SectionsMissingTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmr_sections_missing_total",
			Help: "Reports in which a section heading was not found",
		},
		[]string{"section"},
	)

	ExtractedValues = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cmr_extracted_values",
			Help:    "Number of values extracted per report",
			Buckets: prometheus.LinearBuckets(0, 3, 6),
		},
	)

	NormalsReloadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmr_normals_reload_total",
			Help: "Reference table reload attempts, by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(ReportsRenderedTotal)
	prometheus.MustRegister(SectionsMissingTotal)
	prometheus.MustRegister(ExtractedValues)
	prometheus.MustRegister(NormalsReloadTotal)
}
