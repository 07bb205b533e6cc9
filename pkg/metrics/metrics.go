package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tnt_http_requests_total",
			Help: "Number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tnt_http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tnt_bookings_created_total",
			Help: "Number of bookings created by booking type",
		},
		[]string{"type"},
	)

	BookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tnt_booking_transitions_total",
			Help: "Number of booking status transitions by target status",
		},
		[]string{"status"},
	)

	StatsCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tnt_stats_cache_lookups_total",
			Help: "Earnings report cache lookups by result",
		},
		[]string{"result"},
	)

	EventPublishFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tnt_event_publish_failures_total",
			Help: "Number of booking events that could not be published",
		},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequests,
		HTTPRequestDuration,
		BookingsCreated,
		BookingTransitions,
		StatsCacheLookups,
		EventPublishFailures,
	)
}
