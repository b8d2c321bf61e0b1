package models

import "time"

// AuditFields mirror the audit columns shared by persisted tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// User is the storage-layer representation of an account row.
type User struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	AuthProvider string `db:"auth_provider"`
	AuditFields
	RefreshTokenHash       string     `db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"`
	DeletedAt              *time.Time `db:"deleted_at"`
}
