package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/domain"
	"github.com/supaflow/supabase-auth-go/internal/gotruetest/store"
	"github.com/supaflow/supabase-auth-go/pkg/cryptox"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrUserExists         = errors.New("user_already_exists")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrMissingIdentifier  = errors.New("missing_identifier")
)

type UserService struct {
	Store  store.Store
	Logger *slog.Logger
}

// SignupParams carries the identity material for a new account. Exactly one
// of Email or Phone must be set.
type SignupParams struct {
	Email    string
	Phone    string
	Password string
	Metadata map[string]any
}

// Signup creates a confirmed account and enrolls no factors. The account
// can sign in immediately.
func (s *UserService) Signup(ctx context.Context, p SignupParams) (domain.User, error) {
	if p.Email == "" && p.Phone == "" {
		return domain.User{}, ErrMissingIdentifier
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Aud:          "authenticated",
		Role:         "authenticated",
		PasswordHash: hash,
		Metadata:     p.Metadata,
	}
	if p.Email != "" {
		u.Email = &p.Email
	}
	if p.Phone != "" {
		u.Phone = &p.Phone
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	// Re-read so the returned user carries the stored timestamps.
	created, err := s.Store.Users().GetUserByID(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}

	s.Logger.Info("created user", "user_id", created.ID)
	return created, nil
}

// Authenticate verifies the password for the account addressed by email or
// phone. Soft deleted accounts fail authentication the same way unknown
// ones do.
func (s *UserService) Authenticate(ctx context.Context, email, phone, password string) (domain.User, error) {
	var (
		u   domain.User
		err error
	)
	switch {
	case email != "":
		u, err = s.Store.Users().GetUserByEmail(ctx, email)
	case phone != "":
		u, err = s.Store.Users().GetUserByPhone(ctx, phone)
	default:
		return domain.User{}, ErrMissingIdentifier
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if u.Deleted() {
		return domain.User{}, ErrInvalidCredentials
	}
	if u.BannedUntil != nil && time.Now().Before(*u.BannedUntil) {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		s.Logger.Info("password verification failed", "user_id", u.ID)
		return domain.User{}, ErrInvalidCredentials
	}

	if err := s.Store.Users().TouchLastSignIn(ctx, u.ID); err != nil {
		return domain.User{}, err
	}
	now := time.Now().UTC()
	u.LastSignInAt = &now
	return u, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// DeleteUser removes an account. A soft delete keeps the row and marks it
// deleted; a hard delete removes it and everything hanging off it. Both
// end every live session.
func (s *UserService) DeleteUser(ctx context.Context, id string, soft bool) error {
	if err := s.Store.RefreshTokens().RevokeAllForUser(ctx, id); err != nil {
		return err
	}

	var err error
	if soft {
		err = s.Store.Users().SoftDeleteUser(ctx, id)
	} else {
		err = s.Store.Users().HardDeleteUser(ctx, id)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.Logger.Info("deleted user", "user_id", id, "soft", soft)
	return nil
}

// EnrollTOTP generates a fresh TOTP secret and records an unverified
// factor for the user.
func (s *UserService) EnrollTOTP(ctx context.Context, userID, friendlyName, issuer string) (domain.MFAFactor, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return domain.MFAFactor{}, err
	}

	account := u.ID
	if u.Email != nil {
		account = *u.Email
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
	})
	if err != nil {
		return domain.MFAFactor{}, err
	}

	f := domain.MFAFactor{
		ID:           uuid.NewString(),
		UserID:       u.ID,
		FriendlyName: friendlyName,
		FactorType:   "totp",
		Status:       "unverified",
		Secret:       key.Secret(),
	}
	if err := s.Store.Factors().CreateFactor(ctx, f); err != nil {
		return domain.MFAFactor{}, err
	}
	return f, nil
}

// Factors lists the user's enrolled factors.
func (s *UserService) Factors(ctx context.Context, userID string) ([]domain.MFAFactor, error) {
	return s.Store.Factors().ListFactorsByUser(ctx, userID)
}
