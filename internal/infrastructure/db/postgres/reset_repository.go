package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/ports"
)

const (
	insertResetQuery = `
INSERT INTO password_resets (user_id, token, expires_at)
VALUES ($1, $2, $3)
RETURNING id`

	selectResetByToken = `
SELECT id, user_id, token, expires_at, used
FROM password_resets WHERE token = $1`

	markResetUsedQuery = `UPDATE password_resets SET used = TRUE WHERE id = $1`
)

// PasswordResetRepository persists single-use password reset tokens.
type PasswordResetRepository struct {
	db *pgxpool.Pool
}

func NewPasswordResetRepository(db *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, reset *ports.PasswordReset) error {
	err := r.db.QueryRow(ctx, insertResetQuery,
		reset.UserID, reset.Token, reset.ExpiresAt,
	).Scan(&reset.ID)
	if err != nil {
		return fmt.Errorf("insert password reset: %w", err)
	}
	return nil
}

func (r *PasswordResetRepository) FindByToken(ctx context.Context, token string) (*ports.PasswordReset, error) {
	var reset ports.PasswordReset
	err := r.db.QueryRow(ctx, selectResetByToken, token).Scan(
		&reset.ID, &reset.UserID, &reset.Token, &reset.ExpiresAt, &reset.Used,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrValidation
		}
		return nil, fmt.Errorf("find password reset: %w", err)
	}
	return &reset, nil
}

func (r *PasswordResetRepository) MarkUsed(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, markResetUsedQuery, id); err != nil {
		return fmt.Errorf("mark password reset used: %w", err)
	}
	return nil
}
