package ports

import (
	"context"
	"time"

	"github.com/teamtasks/task-system/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a new task. The task
// is created in the actor's team with status open. Due dates in the past
// are accepted.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	AssigneeID  *int64 // optional; must be an active member of the team
}

// UpdateTaskInput rewrites the descriptive fields of a task. Nil pointers
// leave the corresponding field unchanged; ClearDueDate removes the date.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
}

// TaskDetail is the full task view: the task, its live notes, and a
// warning flag raised when the assignee account has been deactivated.
type TaskDetail struct {
	Task                domain.Task
	Notes               []domain.Note
	AssigneeDeactivated bool
}

// TaskService defines use-case operations for tasks and their notes.
// Every operation takes the acting user resolved by the session layer and
// enforces the permission rules before touching the store.
type TaskService interface {
	CreateTask(ctx context.Context, actor *domain.User, input CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, actor *domain.User, taskID int64) (*TaskDetail, error)
	ListTasks(ctx context.Context, actor *domain.User, filter ListTasksFilter) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, actor *domain.User, taskID int64, status domain.TaskStatus) (*domain.Task, error)
	Assign(ctx context.Context, actor *domain.User, taskID int64, assigneeID *int64) (*domain.Task, error)
	UpdateTask(ctx context.Context, actor *domain.User, taskID int64, input UpdateTaskInput) (*domain.Task, error)
	AddNote(ctx context.Context, actor *domain.User, taskID int64, body string) (*domain.Note, error)
	DeleteNote(ctx context.Context, actor *domain.User, taskID, noteID int64) error
	DeleteTask(ctx context.Context, actor *domain.User, taskID int64) error
}
