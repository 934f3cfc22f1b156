package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	paymentVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel_booking",
			Name:      "payment_verifications_total",
			Help:      "Count of gateway verification attempts by outcome.",
		},
		[]string{"outcome"},
	)

	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "travel_booking",
			Name:      "reservations_created_total",
			Help:      "Count of reservations persisted after successful verification.",
		},
	)

	supportTickets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel_booking",
			Name:      "support_tickets_total",
			Help:      "Count of support ticket events by kind.",
		},
		[]string{"kind"},
	)
)

// Outcome labels for payment verification attempts.
const (
	OutcomeVerified    = "verified"
	OutcomeRejected    = "rejected"
	OutcomeUnreachable = "unreachable"
	OutcomeDuplicate   = "duplicate"
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(paymentVerifications, reservationsCreated, supportTickets)
	})
}

func IncPaymentVerification(outcome string) {
	paymentVerifications.WithLabelValues(outcome).Inc()
}

func IncReservationCreated() {
	reservationsCreated.Inc()
}

func IncSupportTicket(kind string) {
	supportTickets.WithLabelValues(kind).Inc()
}
