package repositories

import (
	"context"
	"time"

	"github.com/fxtrack/fxtrack/internal/core/domain"
)

// UserReaderRepository defines read operations for user data.
type UserReaderRepository interface {
	// FindUserByID retrieves a user by ID, excluding soft-deleted users.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, excluding soft-deleted users.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterRepository defines write operations for user data.
type UserWriterRepository interface {
	// SaveUser inserts or updates the user profile row.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hashed refresh token and its expiry.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken removes any stored refresh token for the user.
	ClearRefreshToken(ctx context.Context, userID string) error

	// MarkUserDeleted soft-deletes the user and revokes any stored refresh
	// token in one transaction.
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// UserRepository combines all user persistence operations.
type UserRepository interface {
	UserReaderRepository
	UserWriterRepository
}
