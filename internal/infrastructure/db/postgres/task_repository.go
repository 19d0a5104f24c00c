package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/ports"
)

const (
	insertTaskQuery = `
INSERT INTO tasks (team_id, title, description, due_date, status, assignee_id, creator_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`

	selectTaskColumns = `id, team_id, title, description, due_date, status, assignee_id, creator_id, created_at, updated_at`

	updateTaskStatusQuery = `
UPDATE tasks SET status = $2, updated_at = now()
WHERE id = $1
RETURNING ` + selectTaskColumns

	updateTaskAssigneeQuery = `
UPDATE tasks SET assignee_id = $2, updated_at = now()
WHERE id = $1
RETURNING ` + selectTaskColumns

	updateTaskQuery = `
UPDATE tasks SET title = $2, description = $3, due_date = $4, status = $5, assignee_id = $6, updated_at = now()
WHERE id = $1
RETURNING ` + selectTaskColumns

	deleteTaskQuery = `DELETE FROM tasks WHERE id = $1`
)

// TaskRepository persists tasks. Mutations that carry an audit note run
// the field update and the note insert in one transaction.
type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	created := *t
	err := r.db.QueryRow(ctx, insertTaskQuery,
		t.TeamID, t.Title, t.Description, t.DueDate, t.Status, t.AssigneeID, t.CreatorID,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+selectTaskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

func (r *TaskRepository) FindByTeamAndTitle(ctx context.Context, teamID int64, title string) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+selectTaskColumns+` FROM tasks WHERE team_id = $1 AND title = $2`,
		teamID, title)
	return scanTask(row)
}

func (r *TaskRepository) List(ctx context.Context, filter ports.ListTasksFilter) ([]domain.Task, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + selectTaskColumns + ` FROM tasks WHERE team_id = $1`)
	args := []any{filter.TeamID}

	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		sb.WriteString(` AND assignee_id = $` + strconv.Itoa(len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		sb.WriteString(` AND status = $` + strconv.Itoa(len(args)))
	}
	if filter.DueFrom != nil {
		args = append(args, *filter.DueFrom)
		sb.WriteString(` AND due_date >= $` + strconv.Itoa(len(args)))
	}
	if filter.DueTo != nil {
		args = append(args, *filter.DueTo)
		sb.WriteString(` AND due_date <= $` + strconv.Itoa(len(args)))
	}
	sb.WriteString(` ORDER BY due_date ASC NULLS LAST, updated_at DESC`)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(
			&t.ID, &t.TeamID, &t.Title, &t.Description, &t.DueDate, &t.Status,
			&t.AssigneeID, &t.CreatorID, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, audit *domain.Note) (*domain.Task, error) {
	return r.updateWithAudit(ctx, audit, updateTaskStatusQuery, id, status)
}

func (r *TaskRepository) UpdateAssignee(ctx context.Context, id int64, assigneeID *int64, audit *domain.Note) (*domain.Task, error) {
	return r.updateWithAudit(ctx, audit, updateTaskAssigneeQuery, id, assigneeID)
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task, audit *domain.Note) (*domain.Task, error) {
	return r.updateWithAudit(ctx, audit, updateTaskQuery,
		t.ID, t.Title, t.Description, t.DueDate, t.Status, t.AssigneeID)
}

// updateWithAudit runs the task update and, when audit is non-nil, the
// audit note insert inside one transaction.
func (r *TaskRepository) updateWithAudit(ctx context.Context, audit *domain.Note, query string, args ...any) (*domain.Task, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	task, err := scanTask(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if audit != nil {
		audit.TaskID = task.ID
		if _, err := tx.Exec(ctx, insertNoteQuery,
			audit.TaskID, audit.AuthorID, audit.Body, audit.System,
		); err != nil {
			return nil, fmt.Errorf("insert audit note: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.TeamID, &t.Title, &t.Description, &t.DueDate, &t.Status,
		&t.AssigneeID, &t.CreatorID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}
