package store

import (
	"context"
	"errors"
	"time"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for the test service. Concrete
// drivers implement it; sqlite is the only one today. Sub-repositories keep
// the concerns tidy and let services depend on only what they touch.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Factors() Factors

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists when the
	// email or phone is already taken.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during the password grant.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByPhone is used during the password grant.
	GetUserByPhone(ctx context.Context, phone string) (domain.User, error)

	// TouchLastSignIn records a successful sign in and bumps updated_at.
	TouchLastSignIn(ctx context.Context, userID string) error

	// BanUser blocks sign in until the given time.
	BanUser(ctx context.Context, userID string, until time.Time) error

	// SoftDeleteUser sets deleted_at, keeping the row.
	SoftDeleteUser(ctx context.Context, userID string) error

	// HardDeleteUser removes the row. Cascades to refresh_tokens and
	// mfa_factors per schema.
	HardDeleteUser(ctx context.Context, userID string) error
}

type RefreshTokens interface {
	// InsertRefreshToken stores a freshly issued token.
	InsertRefreshToken(ctx context.Context, t domain.RefreshToken) error

	GetRefreshToken(ctx context.Context, token string) (domain.RefreshToken, error)

	// RevokeRefreshToken marks a single token as used up.
	RevokeRefreshToken(ctx context.Context, token string) error

	// RevokeAllForUser ends every session for the user, as logout does.
	RevokeAllForUser(ctx context.Context, userID string) error
}

type Factors interface {
	CreateFactor(ctx context.Context, f domain.MFAFactor) error

	ListFactorsByUser(ctx context.Context, userID string) ([]domain.MFAFactor, error)
}
