package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/domain"
)

type factorsRepo struct {
	db *sql.DB
}

func (r *factorsRepo) CreateFactor(ctx context.Context, f domain.MFAFactor) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mfa_factors (id, user_id, friendly_name, factor_type, status, secret, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.UserID, f.FriendlyName, f.FactorType, f.Status, f.Secret, now, now,
	)
	return mapConflict(err)
}

func (r *factorsRepo) ListFactorsByUser(ctx context.Context, userID string) ([]domain.MFAFactor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, friendly_name, factor_type, status, secret, created_at, updated_at
		FROM mfa_factors WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var factors []domain.MFAFactor
	for rows.Next() {
		var f domain.MFAFactor
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.FriendlyName, &f.FactorType,
			&f.Status, &f.Secret, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		factors = append(factors, f)
	}
	return factors, rows.Err()
}
