package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/farwill/travel-booking/internal/model"
)

// TicketRepo stores support tickets and admin replies.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

const ticketCols = "id, reference, email, message, status, attended, admin_reply, replied_at, created_at"

// Create files a new open ticket and returns it with its public reference.
func (r *TicketRepo) Create(ctx context.Context, email, message string) (model.SupportTicket, error) {
	ref := uuid.NewString()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO support_tickets (reference, email, message) VALUES (?,?,?)",
		ref, email, message)
	if err != nil {
		return model.SupportTicket{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.SupportTicket{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one ticket.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (model.SupportTicket, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+ticketCols+" FROM support_tickets WHERE id=? LIMIT 1", id)
	t, err := scanTicket(row)
	if err == sql.ErrNoRows {
		return model.SupportTicket{}, ErrNotFound
	}
	return t, err
}

// ListAll returns every ticket, newest first.
func (r *TicketRepo) ListAll(ctx context.Context) ([]model.SupportTicket, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+ticketCols+" FROM support_tickets ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []model.SupportTicket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// Reply records the admin response and marks the ticket attended.
func (r *TicketRepo) Reply(ctx context.Context, id uint64, reply, status string) (model.SupportTicket, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE support_tickets SET attended=1, status=?, admin_reply=?, replied_at=? WHERE id=?",
		status, reply, time.Now().UTC(), id)
	if err != nil {
		return model.SupportTicket{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.SupportTicket{}, err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.SupportTicket{}, err
		}
	}
	return r.GetByID(ctx, id)
}

func scanTicket(row rowScanner) (model.SupportTicket, error) {
	var (
		t         model.SupportTicket
		reply     sql.NullString
		repliedAt sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Reference, &t.Email, &t.Message, &t.Status,
		&t.Attended, &reply, &repliedAt, &t.CreatedAt)
	if err != nil {
		return model.SupportTicket{}, err
	}
	if reply.Valid {
		s := reply.String
		t.AdminReply = &s
	}
	if repliedAt.Valid {
		at := repliedAt.Time
		t.RepliedAt = &at
	}
	return t, nil
}
