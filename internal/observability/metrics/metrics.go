package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clinic_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	appointmentEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_appointment_events_total",
		Help: "Appointment lifecycle changes by event type",
	}, []string{"event"})

	authorizationDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_appointment_authorization_denied_total",
		Help: "Appointment mutations rejected because the actor is not the creator",
	}, []string{"operation"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveAppointmentEvent counts a committed appointment lifecycle change.
func ObserveAppointmentEvent(event string) {
	appointmentEvents.WithLabelValues(event).Inc()
}

// ObserveAuthorizationDenied counts a rejected cancel/update/delete.
func ObserveAuthorizationDenied(operation string) {
	authorizationDenials.WithLabelValues(operation).Inc()
}
