package ports

import (
	"context"

	"github.com/teamtasks/task-system/internal/core/domain"
)

// ExportRow is the flat tabular representation of one task. Notes are
// concatenated newline-separated into a single column.
type ExportRow struct {
	Title            string
	Description      string
	DueDate          string // YYYY-MM-DD, empty when undated
	Status           string
	AssigneeUsername string // empty when unassigned
	Notes            string
}

// ImportRow is one parsed row of a tabular import. Line is the source
// line number used in per-row reporting.
type ImportRow struct {
	Line             int
	Title            string
	Description      string
	DueDate          string
	Status           string
	AssigneeUsername string
}

// Import row outcomes.
const (
	ImportCreated = "created"
	ImportUpdated = "updated"
	ImportSkipped = "skipped"
)

// ImportRowResult reports the fate of a single row. Reason is set only
// for skipped rows.
type ImportRowResult struct {
	Line    int    `json:"line"`
	Title   string `json:"title"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

// TransferService converts between persisted tasks and the flat tabular
// representation. Both directions are manager-only and scoped to the
// actor's team.
type TransferService interface {
	// Export derives the rows fresh from the store on every call.
	Export(ctx context.Context, actor *domain.User) ([]ExportRow, error)
	// Import creates or updates a task per row, matched by (team, title).
	// Malformed rows are skipped and reported; the batch never aborts.
	Import(ctx context.Context, actor *domain.User, rows []ImportRow) ([]ImportRowResult, error)
}
