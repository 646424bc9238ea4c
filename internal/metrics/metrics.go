package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medivault",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	appointmentsScheduled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medivault",
			Name:      "appointments_scheduled_total",
			Help:      "Appointments created.",
		},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medivault",
			Name:      "appointment_status_transitions_total",
			Help:      "Appointment status transitions by target status.",
		},
		[]string{"status"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medivault",
			Name:      "notifications_total",
			Help:      "Notification dispatch outcomes.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, appointmentsScheduled, statusTransitions, notifications)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncScheduled counts a created appointment.
func IncScheduled() {
	appointmentsScheduled.Inc()
}

// IncTransition counts a status transition to the given status.
func IncTransition(status string) {
	statusTransitions.WithLabelValues(status).Inc()
}

// IncNotification counts a notification outcome ("sent" or "failed").
func IncNotification(outcome string) {
	notifications.WithLabelValues(outcome).Inc()
}
