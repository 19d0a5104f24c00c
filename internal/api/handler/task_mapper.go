package handler

import (
	"time"

	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/ports"
)

const (
	dueDateLayout   = "2006-01-02"
	timestampLayout = time.RFC3339
)

func toTaskResponse(t *domain.Task) taskResponse {
	resp := taskResponse{
		ID:          t.ID,
		TeamID:      t.TeamID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		AssigneeID:  t.AssigneeID,
		CreatorID:   t.CreatorID,
		CreatedAt:   t.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:   t.UpdatedAt.UTC().Format(timestampLayout),
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format(dueDateLayout)
	}
	return resp
}

func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		TaskID:    n.TaskID,
		AuthorID:  n.AuthorID,
		Body:      n.Body,
		System:    n.System,
		CreatedAt: n.CreatedAt.UTC().Format(timestampLayout),
	}
}

func toTaskDetailResponse(d *ports.TaskDetail) taskDetailResponse {
	resp := taskDetailResponse{
		taskResponse:        toTaskResponse(&d.Task),
		Notes:               make([]noteResponse, 0, len(d.Notes)),
		AssigneeDeactivated: d.AssigneeDeactivated,
	}
	for i := range d.Notes {
		resp.Notes = append(resp.Notes, toNoteResponse(&d.Notes[i]))
	}
	return resp
}

// parseDueDate converts the wire date into a domain value; the empty
// string means no due date.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
