package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in_progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusDone       TaskStatus = "done"
)

// allStatuses is the closed set of accepted status values. Transitions
// between them are unrestricted in direction; every change is audit-logged.
var allStatuses = map[TaskStatus]struct{}{
	StatusOpen:       {},
	StatusInProgress: {},
	StatusBlocked:    {},
	StatusDone:       {},
}

var ErrTaskNotFound = errors.New("task not found")
var ErrNoteNotFound = errors.New("note not found")

// IsValid reports whether s is one of the accepted status values.
func (s TaskStatus) IsValid() bool {
	_, ok := allStatuses[s]
	return ok
}

// Task is the core aggregate root. A task always belongs to exactly one
// team; the assignee is optional but, when set, must be a member of that
// team.
type Task struct {
	ID          int64      `json:"id"`
	TeamID      int64      `json:"team_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      TaskStatus `json:"status"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	CreatorID   int64      `json:"creator_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
