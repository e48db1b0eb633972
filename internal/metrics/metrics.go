package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// AvailabilitySearches counts availability searches served.
	AvailabilitySearches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_availability_searches_total",
		Help: "Total number of availability searches.",
	})

	// BookingsConfirmed counts successfully confirmed bookings.
	BookingsConfirmed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_confirmed_total",
		Help: "Total number of confirmed bookings.",
	})

	// BookingsCancelled counts successfully cancelled bookings.
	BookingsCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_cancelled_total",
		Help: "Total number of cancelled bookings.",
	})

	// BookingConflicts counts operations lost to a concurrent writer.
	BookingConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_conflicts_total",
		Help: "Total number of booking operations rejected due to concurrent updates.",
	})

	// HTTPRequestDuration observes request latency per route and status.
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	registerOnce sync.Once
)

// Register registers all collectors with the default registry. Safe to
// call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			AvailabilitySearches,
			BookingsConfirmed,
			BookingsCancelled,
			BookingConflicts,
			HTTPRequestDuration,
		)
	})
}
