package authsdk

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type deleteUserRequest struct {
	ShouldSoftDelete bool `json:"should_soft_delete"`
}

// SoftDeleteUser marks the user as deleted while retaining their data.
//
// Requires a service role key on the client; without one it returns
// ErrServiceRoleKeyRequired before any network call.
func (c *AuthClient) SoftDeleteUser(ctx context.Context, userID uuid.UUID) error {
	return c.deleteUser(ctx, userID, true)
}

// HardDeleteUser permanently removes the user and all their data. This
// cannot be undone.
//
// Requires a service role key on the client; without one it returns
// ErrServiceRoleKeyRequired before any network call.
func (c *AuthClient) HardDeleteUser(ctx context.Context, userID uuid.UUID) error {
	return c.deleteUser(ctx, userID, false)
}

func (c *AuthClient) deleteUser(ctx context.Context, userID uuid.UUID, soft bool) error {
	// Admin deletion is structurally gated by which credentials the client
	// was built with, so this is enforced locally rather than left to the
	// service.
	if c.serviceRoleKey == "" {
		return ErrServiceRoleKeyRequired
	}

	err := c.doJSON(ctx,
		http.MethodDelete,
		c.endpoint("admin/users/"+userID.String()),
		c.serviceRoleKey, c.serviceRoleKey,
		deleteUserRequest{ShouldSoftDelete: soft},
		nil,
	)
	if err != nil {
		return err
	}

	c.logger.Info("deleted user", "user_id", userID.String(), "soft", soft)
	return nil
}
