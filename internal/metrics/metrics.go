// Package metrics defines Prometheus metrics for the log-insight controller
// and the mock backend.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	FetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loginsight_fetches_total",
			Help: "Log page fetches issued, by mode",
		},
		[]string{"mode"},
	)

	FetchErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loginsight_fetch_errors_total",
			Help: "Log page fetches that ended in an error",
		},
	)

	StaleDropsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loginsight_stale_responses_dropped_total",
			Help: "Responses discarded because a newer request was issued",
		},
	)

	ProbeFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loginsight_probe_failures_total",
			Help: "Count-only probe failures (swallowed)",
		},
	)

	PendingRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "loginsight_pending_records",
			Help: "New matching records observed while the view is paused",
		},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loginsight_http_request_duration_seconds",
			Help:    "Mock backend HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loginsight_http_requests_total",
			Help: "Total mock backend HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		FetchesTotal, FetchErrorsTotal, StaleDropsTotal,
		ProbeFailuresTotal, PendingRecords,
		RequestDuration, RequestsTotal,
	)
}
