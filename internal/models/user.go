package models

import (
	"database/sql"
	"time"
)

// User is the database representation of an application user.
type User struct {
	UserID          string         `db:"user_id"`
	Name            string         `db:"name"`
	Email           string         `db:"email"`
	PasswordHash    sql.NullString `db:"password_hash"` // NULL for OAuth-only users
	AuthProvider    string         `db:"auth_provider"`
	ProviderUserID  sql.NullString `db:"provider_user_id"`
	IsEmailVerified bool           `db:"is_email_verified"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token
}
