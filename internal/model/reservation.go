package model

import "time"

// Reservation status lifecycle.  The reconciler only ever writes "paid";
// "pending" and "cancelled" exist for admin-side status changes.
const (
	ReservationPending   = "pending"
	ReservationPaid      = "paid"
	ReservationCancelled = "cancelled"
)

// UserSnapshot is the booking user captured at reservation time.  It is a
// denormalized copy, not a live reference: the email is resolved from the
// users table when the reservation is created and never updated afterwards.
type UserSnapshot struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

// PlanSnapshot is an immutable copy of the purchased package terms.  It is
// decoupled from the live catalog so later package edits cannot
// retroactively alter a paid booking.
type PlanSnapshot struct {
	Category string `json:"category"`
	Nights   int    `json:"nights"`
	People   int    `json:"people"`
	Price    int64  `json:"price"`
	Total    int64  `json:"total"`
}

// Reservation is one confirmed or pending booking.  PaymentRef is the
// external gateway transaction reference and is unique across all
// reservations: it is the idempotency key for the whole verification flow.
type Reservation struct {
	ID         uint64       `json:"id"`
	User       UserSnapshot `json:"user"`
	Plan       PlanSnapshot `json:"plan"`
	PaymentRef string       `json:"paymentRef"`
	Status     string       `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
