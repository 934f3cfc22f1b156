// Package booking implements the payment-verification and
// reservation-reconciliation flow: confirm a gateway transaction, reject
// replays of the same payment reference, and persist the paid reservation
// exactly once.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/farwill/travel-booking/internal/metrics"
	"github.com/farwill/travel-booking/internal/model"
	"github.com/farwill/travel-booking/internal/payment"
	"github.com/farwill/travel-booking/internal/queue"
	"github.com/farwill/travel-booking/internal/repository"
)

var (
	// ErrPaymentNotVerified means the gateway did not confirm the
	// transaction.  Unreachable gateways and malformed responses collapse
	// into this error for the caller; the distinction is logged.
	ErrPaymentNotVerified = errors.New("payment not verified")

	// ErrUserNotFound means the booking user id does not resolve.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateReservation means this payment reference is already
	// recorded.  The existing reservation is deliberately not returned:
	// a forged retry must not learn another booking's details.
	ErrDuplicateReservation = errors.New("reservation already exists")
)

// PaymentVerifier is the outbound gateway dependency.  *payment.Client
// satisfies it; tests substitute a fake.
type PaymentVerifier interface {
	Verify(ctx context.Context, reference string) (payment.VerifyResult, error)
}

// UserDirectory resolves booking users to their trusted records.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// ReservationStore persists reservations.  Create must enforce payment
// reference uniqueness and report violations as repository.ErrDuplicateRef.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	ExistsByRef(ctx context.Context, paymentRef string) (bool, error)
}

// EventPublisher emits notification events after a successful booking.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.EmailEvent) error
}

// Reconciler coordinates verifier, user directory and reservation store.
// Each Reconcile call is an independent request-scoped task; the struct
// holds no mutable state.
type Reconciler struct {
	verifier     PaymentVerifier
	users        UserDirectory
	reservations ReservationStore
	events       EventPublisher // may be nil
}

// NewReconciler wires the reconciliation flow.  events may be nil in
// setups without a broker.
func NewReconciler(v PaymentVerifier, users UserDirectory, store ReservationStore, events EventPublisher) *Reconciler {
	return &Reconciler{
		verifier:     v,
		users:        users,
		reservations: store,
		events:       events,
	}
}

// Reconcile verifies the payment reference and, on success, persists a
// paid reservation exactly once.  Both the verification and the
// duplicate check must pass before anything is written.  The pre-check is
// a fast path; the store's unique constraint on the payment reference is
// the authoritative guard, so a concurrent double-submit that slips past
// the check still surfaces as ErrDuplicateReservation here.
func (r *Reconciler) Reconcile(ctx context.Context, reference string, userID uint64, plan model.PlanSnapshot) (model.Reservation, error) {
	result, err := r.verifier.Verify(ctx, reference)
	if err != nil {
		// Unreachable gateway or malformed response: not verified, but
		// logged apart from an honest "failed" status.
		log.Printf("booking: gateway verification error for ref %q: %v", reference, err)
		metrics.IncPaymentVerification(metrics.OutcomeUnreachable)
		return model.Reservation{}, ErrPaymentNotVerified
	}
	if !result.Verified {
		log.Printf("booking: payment not verified for ref %q (gateway status %q)", reference, result.RawStatus)
		metrics.IncPaymentVerification(metrics.OutcomeRejected)
		return model.Reservation{}, ErrPaymentNotVerified
	}
	metrics.IncPaymentVerification(metrics.OutcomeVerified)

	exists, err := r.reservations.ExistsByRef(ctx, reference)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("duplicate check: %w", err)
	}
	if exists {
		metrics.IncPaymentVerification(metrics.OutcomeDuplicate)
		return model.Reservation{}, ErrDuplicateReservation
	}

	// Never trust a client-supplied email for the stored snapshot.
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, ErrUserNotFound
		}
		return model.Reservation{}, fmt.Errorf("resolve user: %w", err)
	}

	res := model.Reservation{
		User:       model.UserSnapshot{ID: user.ID, Email: user.Email},
		Plan:       plan,
		PaymentRef: reference,
		Status:     model.ReservationPaid,
	}
	if err := r.reservations.Create(ctx, &res); err != nil {
		if errors.Is(err, repository.ErrDuplicateRef) {
			// Lost the insert race to a concurrent submit of the same ref.
			metrics.IncPaymentVerification(metrics.OutcomeDuplicate)
			return model.Reservation{}, ErrDuplicateReservation
		}
		return model.Reservation{}, fmt.Errorf("persist reservation: %w", err)
	}
	metrics.IncReservationCreated()

	if r.events != nil {
		event := queue.EmailEvent{
			Kind:      queue.KindReservationPaid,
			To:        user.Email,
			Name:      user.FullName,
			Reference: res.PaymentRef,
			PlanLabel: fmt.Sprintf("%s, %d nights, %d people", plan.Category, plan.Nights, plan.People),
			Total:     plan.Total,
			SentAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := r.events.Publish(ctx, event); err != nil {
			// Notification failures never unwind a committed booking.
			log.Printf("booking: publish confirmation for ref %q failed: %v", reference, err)
		}
	}

	return res, nil
}
