package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/farwill/travel-booking/internal/model"
	"github.com/farwill/travel-booking/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

const userCols = "id,fullname,email,password_hash,role,reset_token_hash,reset_expires_at,created_at,updated_at"

// Create inserts a user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, fullname, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (fullname, email, password_hash, role) VALUES (?,?,?,?)",
		strings.TrimSpace(fullname), email, hash, role)
	if err != nil {
		if dupKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id)
}

// ListAll returns every user, newest first.  Password hashes stay in the
// struct; handlers must not serialize them.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userCols+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetResetToken stores the hash and expiry of a freshly issued
// password-reset token, replacing any previous one.
func (r *UserRepo) SetResetToken(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET reset_token_hash=?, reset_expires_at=? WHERE id=?",
		tokenHash, exp, userID)
	return err
}

// GetByResetToken returns the user holding a non-expired reset token hash.
func (r *UserRepo) GetByResetToken(ctx context.Context, tokenHash string) (model.User, error) {
	u, err := r.scanOne(ctx,
		"SELECT "+userCols+" FROM users WHERE reset_token_hash=? LIMIT 1", tokenHash)
	if err != nil {
		return model.User{}, err
	}
	if u.ResetExpiresAt == nil || time.Now().UTC().After(*u.ResetExpiresAt) {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

// UpdatePassword replaces the password hash and clears any pending reset.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, reset_token_hash=NULL, reset_expires_at=NULL WHERE id=?",
		hash, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, query, args...))
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		u         model.User
		resetHash sql.NullString
		resetExp  sql.NullTime
	)
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role,
		&resetHash, &resetExp, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if resetHash.Valid {
		h := resetHash.String
		u.ResetTokenHash = &h
	}
	if resetExp.Valid {
		t := resetExp.Time
		u.ResetExpiresAt = &t
	}
	return u, nil
}
