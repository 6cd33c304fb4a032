package domain

import "time"

// RefreshToken is one link in a session's rotation chain. The token value
// is a ULID, so chains sort by issue time.
type RefreshToken struct {
	Token     string
	UserID    string
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenPair is what a successful grant hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
	ExpiresAt    int64
}
