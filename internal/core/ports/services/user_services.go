package services

import (
	"context"
	"time"

	"github.com/fxtrack/fxtrack/internal/core/domain"
	"github.com/fxtrack/fxtrack/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser creates a new local-credentials account and writes its
	// profile row keyed by the generated account identifier.
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// FindOrCreateGoogleUser resolves an externally authenticated Google
	// identity to a local account, creating the profile row on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)

	// UpdateRefreshToken stores the hashed refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user (sign-out).
	ClearRefreshToken(ctx context.Context, userID string) error

	// DeleteUser soft-deletes the user's account and revokes their refresh
	// token. The account stops resolving for every lookup and login.
	DeleteUser(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication.
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
