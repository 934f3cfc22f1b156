package model

import "time"

// Roles stored in users.role.  ADMIN unlocks the management endpoints;
// every registered account starts as USER.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an application user record as stored in the `users`
// table.  Password hashes and reset-token fields never leave the
// repository layer; handlers expose separate response types.
//
// Fields:
//  ID             – primary key identifier of the user.
//  FullName       – display name supplied at registration.
//  Email          – unique email address (stored lowercase).
//  PasswordHash   – bcrypt hashed password.
//  Role           – USER or ADMIN.
//  ResetTokenHash – SHA-256 hex digest of the active password-reset token, if any.
//  ResetExpiresAt – expiry of the reset token (nil when no reset is pending).
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type User struct {
	ID             uint64     // users.id
	FullName       string     // users.fullname
	Email          string     // users.email
	PasswordHash   string     // users.password_hash
	Role           string     // users.role
	ResetTokenHash *string    // users.reset_token_hash (nullable)
	ResetExpiresAt *time.Time // users.reset_expires_at (nullable)
	CreatedAt      time.Time  // users.created_at
	UpdatedAt      time.Time  // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
