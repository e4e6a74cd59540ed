package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tripbid"

var (
	TripStartTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "trip_start_total", Help: "Trip start attempts by result"},
		[]string{"result"},
	)
	TripStartRetries = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "trip_start_retries_total", Help: "Trip start retries after a stale write"},
	)
	BidSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "bid_submissions_total", Help: "Bid submissions by mode and result"},
		[]string{"mode", "result"},
	)
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "notifications_total", Help: "Notification deliveries by channel and result"},
		[]string{"channel", "result"},
	)
	MirrorWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "mirror_writes_total", Help: "Realtime mirror writes by result"},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Result maps an error to the "ok"/"error" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
