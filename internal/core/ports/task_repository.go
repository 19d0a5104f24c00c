package ports

import (
	"context"
	"time"

	"github.com/teamtasks/task-system/internal/core/domain"
)

// ListTasksFilter carries all query parameters for listing tasks.
// TeamID is always enforced by the service layer (tenant isolation).
type ListTasksFilter struct {
	TeamID     int64
	AssigneeID *int64     // optional: filter by assignee
	Status     string     // optional: filter by task status
	DueFrom    *time.Time // optional: due_date >= DueFrom
	DueTo      *time.Time // optional: due_date <= DueTo
}

// TaskRepository defines persistence operations for tasks. Compound
// mutations (a field change plus its audit note) execute inside a single
// transaction so a denied or failed request leaves no partial state.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	// FindByTeamAndTitle locates the import-matching candidate for a row.
	FindByTeamAndTitle(ctx context.Context, teamID int64, title string) (*domain.Task, error)
	// List returns tasks matching filter, due date ascending with undated
	// tasks last, then most recently updated first.
	List(ctx context.Context, filter ListTasksFilter) ([]domain.Task, error)
	// UpdateStatus sets the new status, bumps updated_at, and inserts the
	// audit note atomically.
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, audit *domain.Note) (*domain.Task, error)
	// UpdateAssignee sets (or clears, when assigneeID is nil) the assignee
	// and inserts the audit note atomically.
	UpdateAssignee(ctx context.Context, id int64, assigneeID *int64, audit *domain.Note) (*domain.Task, error)
	// Update rewrites the mutable fields wholesale (import upsert path).
	// When audit is non-nil it is inserted in the same transaction.
	Update(ctx context.Context, t *domain.Task, audit *domain.Note) (*domain.Task, error)
	// Delete removes the task; its notes go with it (cascade).
	Delete(ctx context.Context, id int64) error
}

// NoteRepository defines persistence operations for task notes.
type NoteRepository interface {
	Create(ctx context.Context, n *domain.Note) (*domain.Note, error)
	FindByID(ctx context.Context, id int64) (*domain.Note, error)
	// ListByTask returns the task's notes oldest first, soft-deleted
	// entries excluded.
	ListByTask(ctx context.Context, taskID int64) ([]domain.Note, error)
	SoftDelete(ctx context.Context, id int64) error
}
