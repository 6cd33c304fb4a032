package domain

import "time"

// User is a row of the auth schema's users table as the test service
// stores it. Identifier fields are nullable because an account is created
// with exactly one of email or phone.
type User struct {
	ID           string // uuid
	Aud          string
	Role         string
	Email        *string
	Phone        *string
	PasswordHash string // argon2 encoded
	Metadata     map[string]any
	LastSignInAt *time.Time
	BannedUntil  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Deleted reports whether the account has been soft deleted. Soft deleted
// accounts keep their row but may no longer sign in.
func (u User) Deleted() bool {
	return u.DeletedAt != nil
}

// MFAFactor is an enrolled second factor. Only TOTP factors exist here.
type MFAFactor struct {
	ID           string // uuid
	UserID       string
	FriendlyName string
	FactorType   string
	Status       string // "unverified" until the first valid code
	Secret       string // base32 TOTP secret
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
