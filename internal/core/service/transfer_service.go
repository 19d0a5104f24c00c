package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamtasks/task-system/internal/api/metrics"
	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/ports"
)

const dueDateLayout = "2006-01-02"

// TransferService converts between persisted tasks and flat rows.
type TransferService struct {
	tasks  ports.TaskRepository
	notes  ports.NoteRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTransferService(
	tasks ports.TaskRepository,
	notes ports.NoteRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *TransferService {
	return &TransferService{tasks: tasks, notes: notes, users: users, logger: logger}
}

// Export produces one row per task of the actor's team, notes
// concatenated newline-separated into a single column. Manager-only.
// Rows are derived fresh from the store on every call.
func (s *TransferService) Export(ctx context.Context, actor *domain.User) ([]ports.ExportRow, error) {
	if !domain.CanManageTeam(actor, actor.TeamID) {
		return nil, domain.ErrForbidden
	}

	tasks, err := s.tasks.List(ctx, ports.ListTasksFilter{TeamID: actor.TeamID})
	if err != nil {
		return nil, err
	}

	members, err := s.users.ListByTeam(ctx, actor.TeamID, true)
	if err != nil {
		return nil, err
	}
	usernameByID := make(map[int64]string, len(members))
	for _, m := range members {
		usernameByID[m.ID] = m.Username
	}

	rows := make([]ports.ExportRow, 0, len(tasks))
	for _, t := range tasks {
		row := ports.ExportRow{
			Title:       t.Title,
			Description: t.Description,
			Status:      string(t.Status),
		}
		if t.DueDate != nil {
			row.DueDate = t.DueDate.Format(dueDateLayout)
		}
		if t.AssigneeID != nil {
			row.AssigneeUsername = usernameByID[*t.AssigneeID]
		}

		notes, err := s.notes.ListByTask(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		bodies := make([]string, 0, len(notes))
		for _, n := range notes {
			bodies = append(bodies, n.Body)
		}
		row.Notes = strings.Join(bodies, "\n")

		rows = append(rows, row)
	}

	s.logger.Info().Int("rows", len(rows)).Int64("team_id", actor.TeamID).Msg("export produced")
	return rows, nil
}

// Import creates or updates one task per row, matched by (team, title).
// Malformed rows are skipped with an individual reason; the batch never
// aborts. Manager-only.
func (s *TransferService) Import(ctx context.Context, actor *domain.User, rows []ports.ImportRow) ([]ports.ImportRowResult, error) {
	if !domain.CanManageTeam(actor, actor.TeamID) {
		return nil, domain.ErrForbidden
	}

	members, err := s.users.ListByTeam(ctx, actor.TeamID, true)
	if err != nil {
		return nil, err
	}
	memberByUsername := make(map[string]domain.User, len(members))
	for _, m := range members {
		memberByUsername[m.Username] = m
	}

	results := make([]ports.ImportRowResult, 0, len(rows))
	for _, row := range rows {
		result := s.importRow(ctx, actor, memberByUsername, row)
		metrics.ImportRowsTotal.WithLabelValues(result.Outcome).Inc()
		results = append(results, result)
	}

	s.logger.Info().Int("rows", len(rows)).Int64("team_id", actor.TeamID).Msg("import finished")
	return results, nil
}

// importRow applies one row. Row-level failures become a skipped result,
// never an error for the batch.
func (s *TransferService) importRow(
	ctx context.Context,
	actor *domain.User,
	memberByUsername map[string]domain.User,
	row ports.ImportRow,
) ports.ImportRowResult {
	skip := func(reason string) ports.ImportRowResult {
		return ports.ImportRowResult{Line: row.Line, Title: row.Title, Outcome: ports.ImportSkipped, Reason: reason}
	}

	title := strings.TrimSpace(row.Title)
	if title == "" {
		return skip("title cannot be empty")
	}

	status := domain.StatusOpen
	if row.Status != "" {
		status = domain.TaskStatus(strings.ToLower(strings.TrimSpace(row.Status)))
		if !status.IsValid() {
			return skip(fmt.Sprintf("unknown status %q", row.Status))
		}
	}

	var dueDate *time.Time
	if strings.TrimSpace(row.DueDate) != "" {
		parsed, err := time.Parse(dueDateLayout, strings.TrimSpace(row.DueDate))
		if err != nil {
			return skip(fmt.Sprintf("unparsable due date %q", row.DueDate))
		}
		dueDate = &parsed
	}

	var assigneeID *int64
	if username := normalizeUsername(row.AssigneeUsername); username != "" {
		member, ok := memberByUsername[username]
		if !ok {
			return skip(fmt.Sprintf("unknown assignee %q", row.AssigneeUsername))
		}
		assigneeID = &member.ID
	}

	existing, err := s.tasks.FindByTeamAndTitle(ctx, actor.TeamID, title)
	switch {
	case err == nil:
		updated := *existing
		updated.Description = row.Description
		updated.DueDate = dueDate
		updated.Status = status
		updated.AssigneeID = assigneeID

		// Status changes get an audit note even when applied via import.
		var audit *domain.Note
		if existing.Status != status {
			audit = &domain.Note{
				TaskID:   existing.ID,
				AuthorID: actor.ID,
				Body:     fmt.Sprintf("%s changed status from %s to %s", actor.FullName, existing.Status, status),
				System:   true,
			}
		}
		if _, err := s.tasks.Update(ctx, &updated, audit); err != nil {
			return skip(err.Error())
		}
		return ports.ImportRowResult{Line: row.Line, Title: title, Outcome: ports.ImportUpdated}

	case errors.Is(err, domain.ErrTaskNotFound):
		created, err := s.tasks.Create(ctx, &domain.Task{
			TeamID:      actor.TeamID,
			Title:       title,
			Description: row.Description,
			DueDate:     dueDate,
			Status:      status,
			AssigneeID:  assigneeID,
			CreatorID:   actor.ID,
		})
		if err != nil {
			return skip(err.Error())
		}
		metrics.TasksCreatedTotal.Inc()
		s.logger.Debug().Int64("task_id", created.ID).Str("title", title).Msg("task created via import")
		return ports.ImportRowResult{Line: row.Line, Title: title, Outcome: ports.ImportCreated}

	default:
		return skip(err.Error())
	}
}
