package authsdk

import (
	"context"
	"net/http"
)

type signupRequest struct {
	Email       *string        `json:"email,omitempty"`
	PhoneNumber *string        `json:"phone_number,omitempty"`
	Password    string         `json:"password"`
	Data        map[string]any `json:"data,omitempty"`
}

type signupResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Signup creates a new user account addressed by id with the given password
// and optional metadata. The new user is signed in as part of signup; the
// returned access token can authenticate requests immediately.
//
// Returns ErrInvalidParameters locally, without a network call, when the
// identifier's active form or the password is empty.
func (c *AuthClient) Signup(
	ctx context.Context,
	id Identifier,
	password string,
	metadata map[string]any,
) (*User, string, error) {
	if err := id.validate(); err != nil {
		c.logger.Error("signup: empty identifier")
		return nil, "", err
	}
	if password == "" {
		c.logger.Error("signup: empty password")
		return nil, "", ErrInvalidParameters
	}

	body := signupRequest{
		Password: password,
		Data:     metadata,
	}
	if id.IsEmail() {
		email := id.Email()
		body.Email = &email
	} else {
		phone := id.Phone()
		body.PhoneNumber = &phone
	}

	// Signup is an anonymous-context operation: the anon key is both the
	// apikey and the bearer credential.
	var resp signupResponse
	err := c.doJSON(ctx, http.MethodPost, c.endpoint("signup"), c.anonKey, c.anonKey, body, &resp)
	if err != nil {
		return nil, "", err
	}

	c.logger.Info("created user", "user_id", resp.User.ID.String())
	return &resp.User, resp.AccessToken, nil
}
