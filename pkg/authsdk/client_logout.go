package authsdk

import (
	"context"
	"net/http"
)

// Logout asks the service to invalidate the session behind the access
// token. The invalidation happens remotely and its timing (immediate or
// eventual) is the service's business: callers must not assume the token is
// unusable the moment this returns.
//
// Returns ErrInvalidParameters locally when the token is empty.
func (c *AuthClient) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		c.logger.Error("logout: empty token")
		return ErrInvalidParameters
	}

	err := c.doJSON(ctx, http.MethodPost, c.endpoint("logout"), c.anonKey, accessToken, nil, nil)
	if err != nil {
		return err
	}

	c.logger.Info("logged out session")
	return nil
}
