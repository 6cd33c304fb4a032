package authsdk

import (
	"context"
	"net/http"
)

type passwordGrantRequest struct {
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password"`
}

// SigninWithPassword authenticates the user addressed by id with their
// password and returns a full token response.
//
// Returns ErrInvalidParameters locally when the identifier's active form or
// the password is empty, and ErrNotAuthorized when the service rejects the
// credentials.
func (c *AuthClient) SigninWithPassword(
	ctx context.Context,
	id Identifier,
	password string,
) (*TokenResponse, error) {
	if password == "" {
		c.logger.Error("signin: empty password")
		return nil, ErrInvalidParameters
	}
	if err := id.validate(); err != nil {
		c.logger.Error("signin: empty identifier")
		return nil, err
	}

	body := passwordGrantRequest{Password: password}
	if id.IsEmail() {
		email := id.Email()
		body.Email = &email
	} else {
		phone := id.Phone()
		body.Phone = &phone
	}

	var tokenResp TokenResponse
	err := c.doJSON(ctx,
		http.MethodPost,
		c.endpoint("token?grant_type=password"),
		c.anonKey, c.anonKey,
		body, &tokenResp,
	)
	if err != nil {
		return nil, err
	}

	c.logger.Info("signed in",
		"tokens_are_nonempty", tokenResp.AccessToken != "" && tokenResp.RefreshToken != "",
	)
	return &tokenResp, nil
}
