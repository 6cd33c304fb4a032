package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/domain"
)

type refreshTokensRepo struct {
	db *sql.DB
}

func (r *refreshTokensRepo) InsertRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (token, user_id, revoked, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.Token, t.UserID, t.Revoked, now, now,
	)
	return mapConflict(err)
}

func (r *refreshTokensRepo) GetRefreshToken(ctx context.Context, token string) (domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.QueryRowContext(ctx, `
		SELECT token, user_id, revoked, created_at, updated_at
		FROM refresh_tokens WHERE token = ?`, token,
	).Scan(&t.Token, &t.UserID, &t.Revoked, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *refreshTokensRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1, updated_at = ? WHERE token = ?`,
		time.Now().UTC(), token,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *refreshTokensRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1, updated_at = ? WHERE user_id = ? AND revoked = 0`,
		time.Now().UTC(), userID,
	)
	return err
}
