package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamtasks/task-system/internal/core/domain"
)

const (
	insertTeamQuery  = `INSERT INTO teams (name) VALUES ($1) RETURNING id, created_at`
	selectTeamByID   = `SELECT id, name, created_at FROM teams WHERE id = $1`
	selectTeamByName = `SELECT id, name, created_at FROM teams WHERE name = $1`
)

// TeamRepository persists tenant teams.
type TeamRepository struct {
	db *pgxpool.Pool
}

func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	created := *team
	err := r.db.QueryRow(ctx, insertTeamQuery, team.Name).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationSQLErr {
			return nil, domain.ErrTeamExists
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}
	return &created, nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id int64) (*domain.Team, error) {
	return r.findOne(ctx, selectTeamByID, id)
}

func (r *TeamRepository) FindByName(ctx context.Context, name string) (*domain.Team, error) {
	return r.findOne(ctx, selectTeamByName, name)
}

func (r *TeamRepository) findOne(ctx context.Context, query string, arg any) (*domain.Team, error) {
	var t domain.Team
	err := r.db.QueryRow(ctx, query, arg).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("find team: %w", err)
	}
	return &t, nil
}
