package repository

import (
	"context"
	"database/sql"

	"github.com/farwill/travel-booking/internal/model"
)

// FeesRepo manages the single platform fee sheet.  The row is pinned to
// id=1 so that Set is an upsert and Get never has to pick between rows.
type FeesRepo struct{ DB *sql.DB }

func NewFeesRepo(db *sql.DB) *FeesRepo { return &FeesRepo{DB: db} }

// Set creates or overwrites the fee sheet.
func (r *FeesRepo) Set(ctx context.Context, f model.Fees) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO fees (id, visa_fee, airport_pickup_fee, misc_fee, ticket_price, margin_percentage)
		VALUES (1, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			visa_fee=VALUES(visa_fee),
			airport_pickup_fee=VALUES(airport_pickup_fee),
			misc_fee=VALUES(misc_fee),
			ticket_price=VALUES(ticket_price),
			margin_percentage=VALUES(margin_percentage)`,
		f.VisaFee, f.AirportPickupFee, f.MiscFee, f.TicketPrice, f.MarginPercentage)
	return err
}

// Get returns the current fee sheet or ErrNotFound when none was set yet.
func (r *FeesRepo) Get(ctx context.Context) (model.Fees, error) {
	var f model.Fees
	err := r.DB.QueryRowContext(ctx, `
		SELECT visa_fee, airport_pickup_fee, misc_fee, ticket_price, margin_percentage, created_at, updated_at
		FROM fees WHERE id=1 LIMIT 1`).
		Scan(&f.VisaFee, &f.AirportPickupFee, &f.MiscFee, &f.TicketPrice,
			&f.MarginPercentage, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Fees{}, ErrNotFound
	}
	return f, err
}

// Delete removes the fee sheet.
func (r *FeesRepo) Delete(ctx context.Context) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM fees WHERE id=1")
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
