package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamtasks/task-system/internal/core/domain"
)

const (
	insertNoteQuery = `
INSERT INTO notes (task_id, author_id, body, system)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`

	selectNoteByID = `
SELECT id, task_id, author_id, body, system, deleted, created_at
FROM notes WHERE id = $1`

	selectNotesByTask = `
SELECT id, task_id, author_id, body, system, deleted, created_at
FROM notes
WHERE task_id = $1 AND NOT deleted
ORDER BY created_at ASC, id ASC`

	softDeleteNoteQuery = `UPDATE notes SET deleted = TRUE WHERE id = $1 AND NOT deleted`
)

// NoteRepository persists task notes, system audit entries included.
type NoteRepository struct {
	db *pgxpool.Pool
}

func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	created := *n
	err := r.db.QueryRow(ctx, insertNoteQuery,
		n.TaskID, n.AuthorID, n.Body, n.System,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return &created, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id int64) (*domain.Note, error) {
	var n domain.Note
	err := r.db.QueryRow(ctx, selectNoteByID, id).Scan(
		&n.ID, &n.TaskID, &n.AuthorID, &n.Body, &n.System, &n.Deleted, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	if n.Deleted {
		return nil, domain.ErrNoteNotFound
	}
	return &n, nil
}

func (r *NoteRepository) ListByTask(ctx context.Context, taskID int64) ([]domain.Note, error) {
	rows, err := r.db.Query(ctx, selectNotesByTask, taskID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(
			&n.ID, &n.TaskID, &n.AuthorID, &n.Body, &n.System, &n.Deleted, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, softDeleteNoteQuery, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}
