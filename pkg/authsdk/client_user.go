package authsdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// GetUserByToken validates the access token against the user-info endpoint
// and returns the account it belongs to.
//
// Returns ErrInvalidParameters locally when the token is empty and
// ErrNotAuthorized when the token is invalid or expired.
func (c *AuthClient) GetUserByToken(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		c.logger.Error("get user: empty token")
		return nil, ErrInvalidParameters
	}

	// The access token is the bearer credential here, not the anon key.
	var user User
	err := c.doJSON(ctx, http.MethodGet, c.endpoint("user"), c.anonKey, accessToken, nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID fetches a user record by id, querying the auth schema's users
// table directly instead of the REST auth endpoints. It is authenticated
// with the anon key; whether rows are visible depends on the project's row
// level security policies.
//
// Returns (nil, nil) when no such user exists. If the table reports more
// than one row for the id, that is a data-integrity contract violation and
// surfaces as ErrInternal rather than an arbitrary row.
func (c *AuthClient) GetUserByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	resp, err := c.rest.From("users").
		Auth(c.anonKey).
		Eq("id", userID.String()).
		Select("*").
		Execute(ctx)
	if err != nil {
		c.logger.Debug("users table query", "err", err)
		return nil, ErrHTTP
	}
	defer resp.Body.Close()

	// The table transport reports a missing row set as 404, unlike the
	// auth endpoints.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	statusErr := classifyStatus(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("read users table response", "err", err)
		return nil, ErrHTTP
	}
	c.logger.Debug("users table response", "status", resp.StatusCode, "body", string(body))

	if statusErr != nil {
		if statusErr == ErrNotFound {
			return nil, nil
		}
		return nil, statusErr
	}

	var users []User
	if err := json.Unmarshal(body, &users); err != nil {
		c.logger.Error("decode users table response", "err", err)
		return nil, ErrInternal
	}

	switch len(users) {
	case 0:
		return nil, nil
	case 1:
		return &users[0], nil
	default:
		ids := make([]string, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID.String())
		}
		c.logger.Error("multiple users returned for a single id", "user_ids", ids)
		return nil, ErrInternal
	}
}
