package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/domain"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, aud, role, email, phone, password_hash, metadata,
	last_sign_in_at, banned_until, created_at, updated_at, deleted_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	metadata, err := json.Marshal(u.Metadata)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (id, aud, role, email, phone, password_hash, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Aud, u.Role, nullString(u.Email), nullString(u.Phone),
		u.PasswordHash, string(metadata), now, now,
	)
	return mapConflict(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *usersRepo) GetUserByPhone(ctx context.Context, phone string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE phone = ?`, phone)
}

func (r *usersRepo) getUser(ctx context.Context, query string, arg any) (domain.User, error) {
	var (
		u            domain.User
		email, phone sql.NullString
		metadata     string
		lastSignIn   sql.NullTime
		bannedUntil  sql.NullTime
		deletedAt    sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Aud, &u.Role, &email, &phone, &u.PasswordHash, &metadata,
		&lastSignIn, &bannedUntil, &u.CreatedAt, &u.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Email = stringPtr(email)
	u.Phone = stringPtr(phone)
	u.LastSignInAt = timePtr(lastSignIn)
	u.BannedUntil = timePtr(bannedUntil)
	u.DeletedAt = timePtr(deletedAt)
	if err := json.Unmarshal([]byte(metadata), &u.Metadata); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) TouchLastSignIn(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_sign_in_at = ?, updated_at = ? WHERE id = ?`,
		now, now, userID,
	)
	return err
}

func (r *usersRepo) BanUser(ctx context.Context, userID string, until time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET banned_until = ?, updated_at = ? WHERE id = ?`,
		until.UTC(), time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) SoftDeleteUser(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, userID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) HardDeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
