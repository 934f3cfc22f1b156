// Package queue defines message payloads exchanged over the message broker.
package queue

// EmailQueueName is the durable queue carrying outbound notification events.
const EmailQueueName = "notification.email"

// Event kinds carried on the email queue.
const (
	KindWelcome         = "user.welcome"
	KindPasswordReset   = "user.password_reset"
	KindReservationPaid = "reservation.paid"
	KindTicketReplied   = "ticket.replied"
)

// EmailEvent is published whenever the platform owes someone an email.
// It carries enough information for the consumer to render and send the
// message without querying the primary database.
type EmailEvent struct {
	Kind      string `json:"kind"`
	To        string `json:"to"`
	Name      string `json:"name,omitempty"`       // recipient display name (welcome)
	ResetURL  string `json:"reset_url,omitempty"`  // password reset link
	Reference string `json:"reference,omitempty"`  // payment or ticket reference
	PlanLabel string `json:"plan_label,omitempty"` // e.g. "4 star, 6 nights, 2 people"
	Total     int64  `json:"total,omitempty"`      // reservation total
	Message   string `json:"message,omitempty"`    // original ticket message
	Reply     string `json:"reply,omitempty"`      // admin's reply
	Status    string `json:"status,omitempty"`     // ticket status after reply
	SentAt    string `json:"sent_at"`              // RFC3339 publish time
}
