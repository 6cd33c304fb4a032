package authsdk

import (
	"context"
	"net/http"
)

type refreshGrantRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshToken exchanges a refresh token for a new token pair, extending
// the session without another sign in.
//
// The service usually rotates both tokens, but this layer does not enforce
// that: whether the returned pair differs from the input is a property of
// the service. Returns ErrInvalidParameters locally when the token is
// empty, and ErrNotAuthorized when the service no longer accepts it.
func (c *AuthClient) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		c.logger.Error("refresh: empty token")
		return nil, ErrInvalidParameters
	}

	var tokenResp TokenResponse
	err := c.doJSON(ctx,
		http.MethodPost,
		c.endpoint("token?grant_type=refresh_token"),
		c.anonKey, c.anonKey,
		refreshGrantRequest{RefreshToken: refreshToken},
		&tokenResp,
	)
	if err != nil {
		return nil, err
	}

	c.logger.Info("refreshed token",
		"tokens_are_nonempty", tokenResp.AccessToken != "" && tokenResp.RefreshToken != "",
	)
	return &tokenResp, nil
}
