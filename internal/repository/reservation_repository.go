package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/farwill/travel-booking/internal/model"
)

// ReservationRepo persists reservations created by the payment
// reconciliation flow.  The payment_ref column carries a UNIQUE KEY which
// is the authoritative guard against double-submitted references: two
// concurrent inserts with the same reference race to one committed row and
// the loser gets ErrDuplicateRef.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// ErrDuplicateRef is returned when a reservation with the same payment
// reference already exists.
var ErrDuplicateRef = errors.New("payment reference already recorded")

const reservationCols = `id, user_id, user_email, plan_category, plan_nights, plan_people,
	plan_price, plan_total, payment_ref, status, created_at, updated_at`

// Create inserts a reservation and reads the row back so timestamps and
// column defaults are populated.  A duplicate payment_ref maps to
// ErrDuplicateRef whether it was caught by the caller's pre-check or by
// the unique constraint itself.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	result, err := r.DB.ExecContext(ctx, `
		INSERT INTO reservations
			(user_id, user_email, plan_category, plan_nights, plan_people, plan_price, plan_total, payment_ref, status)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		res.User.ID, res.User.Email,
		res.Plan.Category, res.Plan.Nights, res.Plan.People, res.Plan.Price, res.Plan.Total,
		res.PaymentRef, res.Status)
	if err != nil {
		if dupKey(err) {
			return ErrDuplicateRef
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	row := r.DB.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE id=? LIMIT 1", res.ID)
	got, err := scanReservation(row)
	if err != nil {
		return err
	}
	*res = got
	return nil
}

// ExistsByRef reports whether a reservation with this payment reference is
// already recorded.  Callers use it as a fast-path rejection; the unique
// key on the column remains the real guarantee.
func (r *ReservationRepo) ExistsByRef(ctx context.Context, paymentRef string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM reservations WHERE payment_ref=? LIMIT 1", paymentRef).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns every reservation whose user snapshot id matches.
// No ordering is guaranteed.  A user with no reservations gets an empty
// slice, not an error.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	return r.list(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE user_id=?", userID)
}

// ListAll returns every reservation, newest first, for the admin view.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx,
		"SELECT "+reservationCols+" FROM reservations ORDER BY created_at DESC")
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...any) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanReservation(row rowScanner) (model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.User.ID, &res.User.Email,
		&res.Plan.Category, &res.Plan.Nights, &res.Plan.People,
		&res.Plan.Price, &res.Plan.Total,
		&res.PaymentRef, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}
