package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/domain"
	"github.com/supaflow/supabase-auth-go/internal/gotruetest/store"
	"github.com/supaflow/supabase-auth-go/pkg/idx"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid_token")

type TokenService struct {
	Store     store.Store
	Secret    []byte // HS256 key
	Issuer    string
	AccessTTL time.Duration
	Logger    *slog.Logger
}

// AccessClaims is the claim set minted into access tokens.
type AccessClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// IssuePair mints a new access token and refresh token for the user. The
// refresh token is a ULID, stored so later grants can validate rotation.
func (s *TokenService) IssuePair(ctx context.Context, u domain.User) (domain.TokenPair, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.AccessTTL)

	claims := AccessClaims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   u.ID,
			Audience:  jwt.ClaimStrings{u.Aud},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if u.Email != nil {
		claims.Email = *u.Email
	}
	if u.Phone != nil {
		claims.Phone = *u.Phone
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh := idx.New().String()
	err = s.Store.RefreshTokens().InsertRefreshToken(ctx, domain.RefreshToken{
		Token:  refresh,
		UserID: u.ID,
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
		ExpiresAt:    expiresAt.Unix(),
	}, nil
}

// RefreshGrant rotates the refresh token: the presented token is revoked
// and a new pair is issued. A revoked or unknown token fails the grant.
func (s *TokenService) RefreshGrant(ctx context.Context, token string) (domain.TokenPair, domain.User, error) {
	rt, err := s.Store.RefreshTokens().GetRefreshToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, domain.User{}, ErrInvalidRefresh
		}
		return domain.TokenPair{}, domain.User{}, err
	}
	if rt.Revoked {
		s.Logger.Info("reuse of revoked refresh token", "user_id", rt.UserID)
		return domain.TokenPair{}, domain.User{}, ErrInvalidRefresh
	}

	u, err := s.Store.Users().GetUserByID(ctx, rt.UserID)
	if err != nil || u.Deleted() {
		return domain.TokenPair{}, domain.User{}, ErrInvalidRefresh
	}

	if err := s.Store.RefreshTokens().RevokeRefreshToken(ctx, token); err != nil {
		return domain.TokenPair{}, domain.User{}, err
	}
	pair, err := s.IssuePair(ctx, u)
	if err != nil {
		return domain.TokenPair{}, domain.User{}, err
	}
	return pair, u, nil
}

// ParseAccessToken validates the signature and expiry of an access token
// and returns its claims.
func (s *TokenService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke ends every session for the user behind the access token.
func (s *TokenService) Revoke(ctx context.Context, accessToken string) error {
	claims, err := s.ParseAccessToken(accessToken)
	if err != nil {
		return err
	}
	return s.Store.RefreshTokens().RevokeAllForUser(ctx, claims.Subject)
}
