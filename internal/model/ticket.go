package model

import "time"

// Support ticket states.  A reply moves an open ticket to "closed" unless
// the admin picks a different status.
const (
	TicketOpen       = "open"
	TicketInProgress = "in-progress"
	TicketClosed     = "closed"
)

// SupportTicket is a help request filed by a (possibly anonymous) visitor.
// Reference is a public identifier users can cite in follow-ups without
// exposing the autoincrement id.
type SupportTicket struct {
	ID         uint64     `json:"id"`
	Reference  string     `json:"reference"`
	Email      string     `json:"email"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	Attended   bool       `json:"attended"`
	AdminReply *string    `json:"adminReply,omitempty"`
	RepliedAt  *time.Time `json:"repliedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ValidTicketStatus reports whether s is an allowed ticket status.
func ValidTicketStatus(s string) bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketClosed:
		return true
	}
	return false
}
