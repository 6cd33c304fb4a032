package authsdk

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Identifier
// ============================================================================

// Identifier addresses an account by exactly one of email or phone number.
// Construct it with EmailIdentifier or PhoneIdentifier; the zero value is
// invalid input for every operation.
type Identifier struct {
	email string
	phone string
}

// EmailIdentifier returns an Identifier for email-based authentication.
func EmailIdentifier(email string) Identifier {
	return Identifier{email: email}
}

// PhoneIdentifier returns an Identifier for phone-based authentication.
func PhoneIdentifier(phone string) Identifier {
	return Identifier{phone: phone}
}

// IsEmail reports whether the email form is active.
func (id Identifier) IsEmail() bool { return id.email != "" }

// Email returns the email form, or "" when the phone form is active.
func (id Identifier) Email() string { return id.email }

// Phone returns the phone form, or "" when the email form is active.
func (id Identifier) Phone() string { return id.phone }

// validate rejects identifiers whose active form is empty.
func (id Identifier) validate() error {
	if id.email == "" && id.phone == "" {
		return ErrInvalidParameters
	}
	return nil
}

// ============================================================================
// User
// ============================================================================

// User represents one account in the auth service.
//
// The service omits any field that has no value, so every optional field
// decodes cleanly when absent: pointer fields stay nil, slices stay nil,
// strings stay empty. ID is the only field callers should treat as a stable
// identity; Email and Phone may legitimately be null for some accounts.
type User struct {
	// ID is the unique identifier for the user
	ID uuid.UUID `json:"id"`

	// Aud is the audience claim for issued tokens
	Aud string `json:"aud,omitempty"`

	// Role is the user's role in the system (e.g. "authenticated")
	Role string `json:"role,omitempty"`

	// Email is the user's primary contact email, if any
	Email *string `json:"email,omitempty"`

	// Phone is the user's primary contact phone number, if any
	Phone *string `json:"phone,omitempty"`

	// EmailConfirmedAt is when the email was confirmed
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`

	// PhoneConfirmedAt is when the phone number was confirmed
	PhoneConfirmedAt *time.Time `json:"phone_confirmed_at,omitempty"`

	// ConfirmedAt is when the account was confirmed
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`

	// ConfirmationSentAt is when the confirmation email/SMS was sent
	ConfirmationSentAt *time.Time `json:"confirmation_sent_at,omitempty"`

	// InvitedAt is when the user was invited
	InvitedAt *time.Time `json:"invited_at,omitempty"`

	// RecoverySentAt is when the password recovery email was sent
	RecoverySentAt *time.Time `json:"recovery_sent_at,omitempty"`

	// NewEmail is a pending email change awaiting confirmation
	NewEmail *string `json:"new_email,omitempty"`

	// EmailChangeSentAt is when the email change confirmation was sent
	EmailChangeSentAt *time.Time `json:"email_change_sent_at,omitempty"`

	// NewPhone is a pending phone change awaiting confirmation
	NewPhone *string `json:"new_phone,omitempty"`

	// PhoneChangeSentAt is when the phone change confirmation was sent
	PhoneChangeSentAt *time.Time `json:"phone_change_sent_at,omitempty"`

	// ReauthenticationSentAt is when a reauthentication request was sent
	ReauthenticationSentAt *time.Time `json:"reauthentication_sent_at,omitempty"`

	// LastSignInAt is the user's most recent sign in
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`

	// UserMetadata is arbitrary metadata the user controls
	UserMetadata map[string]any `json:"user_metadata,omitempty"`

	// AppMetadata is arbitrary metadata only privileged callers may write
	AppMetadata map[string]any `json:"app_metadata,omitempty"`

	// Factors lists the user's enrolled MFA factors
	Factors []MFAFactor `json:"factors,omitempty"`

	// Identities lists linked external identities as opaque objects
	Identities []map[string]any `json:"identities,omitempty"`

	// BannedUntil is set while the user is banned
	BannedUntil *time.Time `json:"banned_until,omitempty"`

	// CreatedAt is when the user was created
	CreatedAt *time.Time `json:"created_at,omitempty"`

	// UpdatedAt is when the user was last updated
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// DeletedAt is set once the user has been soft deleted
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// MFAFactor is one enrolled multi-factor authentication factor.
type MFAFactor struct {
	// ID is the unique identifier for the factor
	ID *uuid.UUID `json:"id,omitempty"`

	// FactorType is the kind of factor (e.g. "totp")
	FactorType *string `json:"factor_type,omitempty"`

	// FriendlyName is the user-chosen name for the factor
	FriendlyName *string `json:"friendly_name,omitempty"`

	// Status is the factor's verification state; absent means unverified
	Status FactorStatus `json:"status,omitempty"`
}

// FactorStatus is the verification state of an MFA factor.
type FactorStatus string

const (
	// FactorVerified marks a factor that has been verified and is active.
	FactorVerified FactorStatus = "verified"

	// FactorUnverified marks a factor that is not yet verified.
	FactorUnverified FactorStatus = "unverified"
)

// Verified reports whether the factor has been verified. The zero value
// counts as unverified, matching the service's default.
func (s FactorStatus) Verified() bool { return s == FactorVerified }

// ============================================================================
// Tokens
// ============================================================================

// TokenResponse is the session credential set returned by signup, signin
// and refresh. String and numeric fields default to empty/zero when the
// service omits them; omission is never a decode failure.
type TokenResponse struct {
	// AccessToken is the JWT access token used to authenticate API requests
	AccessToken string `json:"access_token"`

	// TokenType is the token type label (typically "bearer")
	TokenType string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds
	ExpiresIn int64 `json:"expires_in"`

	// ExpiresAt is the absolute expiry as epoch seconds
	ExpiresAt int64 `json:"expires_at"`

	// RefreshToken is the opaque token used to obtain new access tokens
	RefreshToken string `json:"refresh_token"`

	// User is the account the tokens belong to, when the service includes it
	User *User `json:"user,omitempty"`

	// ProviderToken passes through a third-party provider's access token
	ProviderToken string `json:"provider_token,omitempty"`

	// ProviderRefreshToken passes through a third-party provider's refresh token
	ProviderRefreshToken string `json:"provider_refresh_token,omitempty"`

	// WeakPassword advises that the password used should be changed
	WeakPassword *WeakPassword `json:"weak_password,omitempty"`
}

// WeakPassword is the advisory attached to a token response when the
// password satisfies the policy but is considered weak.
type WeakPassword struct {
	// Message describes why the password is weak
	Message string `json:"message"`

	// Reasons lists specific reason codes
	Reasons []string `json:"reasons"`
}
