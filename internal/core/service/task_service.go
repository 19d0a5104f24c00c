package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/teamtasks/task-system/internal/api/metrics"
	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/ports"
)

// TaskService implements task and note use cases. Permission predicates
// run before any repository write so a denied request has no side
// effects.
type TaskService struct {
	tasks  ports.TaskRepository
	notes  ports.NoteRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	notes ports.NoteRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{tasks: tasks, notes: notes, users: users, logger: logger}
}

// CreateTask creates a task in the actor's team with status open. A due
// date in the past is accepted; that is a documented choice, not an
// oversight.
func (s *TaskService) CreateTask(ctx context.Context, actor *domain.User, input ports.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}
	if input.AssigneeID != nil {
		if err := s.checkAssignee(ctx, actor.TeamID, *input.AssigneeID); err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.Create(ctx, &domain.Task{
		TeamID:      actor.TeamID,
		Title:       title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      domain.StatusOpen,
		AssigneeID:  input.AssigneeID,
		CreatorID:   actor.ID,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("title", title).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.Inc()
	s.logger.Info().Int64("task_id", task.ID).Int64("team_id", task.TeamID).Str("title", title).Msg("task created")
	return task, nil
}

// GetTask returns the task with its notes. Any member of the task's team
// may read. When the assignee account has been deactivated the detail
// carries a warning flag instead of rewriting the assignment.
func (s *TaskService) GetTask(ctx context.Context, actor *domain.User, taskID int64) (*ports.TaskDetail, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !domain.CanActOnTask(actor, task, domain.ActionRead) {
		return nil, domain.ErrForbidden
	}

	notes, err := s.notes.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	detail := &ports.TaskDetail{Task: *task, Notes: notes}
	if task.AssigneeID != nil {
		assignee, err := s.users.FindByID(ctx, *task.AssigneeID)
		if err == nil && !assignee.Active {
			detail.AssigneeDeactivated = true
		}
	}
	return detail, nil
}

// ListTasks lists the actor's team tasks; the team filter is always
// forced to the actor's team regardless of the input.
func (s *TaskService) ListTasks(ctx context.Context, actor *domain.User, filter ports.ListTasksFilter) ([]domain.Task, error) {
	filter.TeamID = actor.TeamID
	if filter.Status != "" && !domain.TaskStatus(filter.Status).IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, filter.Status)
	}
	return s.tasks.List(ctx, filter)
}

// UpdateStatus applies a status change and appends the audit note in the
// same transaction. Transitions are unrestricted in direction.
func (s *TaskService) UpdateStatus(ctx context.Context, actor *domain.User, taskID int64, status domain.TaskStatus) (*domain.Task, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !domain.CanActOnTask(actor, task, domain.ActionUpdate) {
		return nil, domain.ErrForbidden
	}
	if task.Status == status {
		return task, nil
	}

	audit := &domain.Note{
		TaskID:   taskID,
		AuthorID: actor.ID,
		Body:     fmt.Sprintf("%s changed status from %s to %s", actor.FullName, task.Status, status),
		System:   true,
	}
	updated, err := s.tasks.UpdateStatus(ctx, taskID, status, audit)
	if err != nil {
		s.logger.Error().Err(err).Int64("task_id", taskID).Msg("failed to update status")
		return nil, err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(task.Status), string(status)).Inc()
	s.logger.Info().
		Int64("task_id", taskID).
		Str("from", string(task.Status)).
		Str("to", string(status)).
		Str("actor", actor.Username).
		Msg("status updated")
	return updated, nil
}

// Assign sets or clears the assignee. Manager-only; the new assignee must
// be an active member of the task's team.
func (s *TaskService) Assign(ctx context.Context, actor *domain.User, taskID int64, assigneeID *int64) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !domain.CanActOnTask(actor, task, domain.ActionAssign) {
		return nil, domain.ErrForbidden
	}

	body := fmt.Sprintf("%s cleared the assignee", actor.FullName)
	if assigneeID != nil {
		assignee, err := s.checkedAssignee(ctx, task.TeamID, *assigneeID)
		if err != nil {
			return nil, err
		}
		body = fmt.Sprintf("%s assigned the task to %s", actor.FullName, assignee.FullName)
	}

	audit := &domain.Note{TaskID: taskID, AuthorID: actor.ID, Body: body, System: true}
	updated, err := s.tasks.UpdateAssignee(ctx, taskID, assigneeID, audit)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("task_id", taskID).Str("actor", actor.Username).Msg("assignee updated")
	return updated, nil
}

// UpdateTask rewrites the descriptive fields. Assignee or any team
// manager may edit.
func (s *TaskService) UpdateTask(ctx context.Context, actor *domain.User, taskID int64, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !domain.CanActOnTask(actor, task, domain.ActionUpdate) {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	return s.tasks.Update(ctx, task, nil)
}

// AddNote attaches a user note. Any team member may comment.
func (s *TaskService) AddNote(ctx context.Context, actor *domain.User, taskID int64, body string) (*domain.Note, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: note body cannot be empty", domain.ErrValidation)
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !domain.CanActOnTask(actor, task, domain.ActionRead) {
		return nil, domain.ErrForbidden
	}

	note, err := s.notes.Create(ctx, &domain.Note{TaskID: taskID, AuthorID: actor.ID, Body: body})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("task_id", taskID).Int64("note_id", note.ID).Msg("note added")
	return note, nil
}

// DeleteNote soft-deletes a note. Allowed for the note's author or a team
// manager.
func (s *TaskService) DeleteNote(ctx context.Context, actor *domain.User, taskID, noteID int64) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	note, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		return err
	}
	if note.TaskID != task.ID {
		return domain.ErrNoteNotFound
	}
	if note.AuthorID != actor.ID && !domain.CanActOnTask(actor, task, domain.ActionDelete) {
		return domain.ErrForbidden
	}
	return s.notes.SoftDelete(ctx, noteID)
}

// DeleteTask removes the task and all its notes. Manager-only.
func (s *TaskService) DeleteTask(ctx context.Context, actor *domain.User, taskID int64) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if !domain.CanActOnTask(actor, task, domain.ActionDelete) {
		return domain.ErrForbidden
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		s.logger.Error().Err(err).Int64("task_id", taskID).Msg("failed to delete task")
		return err
	}

	s.logger.Info().Int64("task_id", taskID).Str("actor", actor.Username).Msg("task deleted")
	return nil
}

// checkAssignee validates team membership and active status.
func (s *TaskService) checkAssignee(ctx context.Context, teamID, assigneeID int64) error {
	_, err := s.checkedAssignee(ctx, teamID, assigneeID)
	return err
}

func (s *TaskService) checkedAssignee(ctx context.Context, teamID, assigneeID int64) (*domain.User, error) {
	assignee, err := s.users.FindByID(ctx, assigneeID)
	if err != nil {
		return nil, fmt.Errorf("%w: assignee does not exist", domain.ErrValidation)
	}
	if assignee.TeamID != teamID {
		return nil, fmt.Errorf("%w: assignee is not a member of the task's team", domain.ErrValidation)
	}
	if !assignee.Active {
		return nil, fmt.Errorf("%w: assignee account is deactivated", domain.ErrValidation)
	}
	return assignee, nil
}
