package service

// In-memory stub repositories shared by the service tests. They mirror
// the behaviour of the PostgreSQL implementations closely enough for the
// use-case logic to be exercised without a database.

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/ports"
)

func discardLogger() zerolog.Logger {
	return zerolog.Nop()
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	seq   int64
	users map[int64]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *u
	clone.ID = r.seq
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListByTeam(_ context.Context, teamID int64, includeInactive bool) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.TeamID != teamID {
			continue
		}
		if !includeInactive && !u.Active {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id int64) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id int64, role string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// ---------------------------------------------------------------------------
// Teams
// ---------------------------------------------------------------------------

type stubTeamRepo struct {
	seq   int64
	teams map[int64]*domain.Team
}

func newStubTeamRepo() *stubTeamRepo {
	return &stubTeamRepo{teams: make(map[int64]*domain.Team)}
}

func (r *stubTeamRepo) Create(_ context.Context, t *domain.Team) (*domain.Team, error) {
	for _, existing := range r.teams {
		if existing.Name == t.Name {
			return nil, domain.ErrTeamExists
		}
	}
	r.seq++
	clone := *t
	clone.ID = r.seq
	clone.CreatedAt = time.Now()
	r.teams[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTeamRepo) FindByID(_ context.Context, id int64) (*domain.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTeamRepo) FindByName(_ context.Context, name string) (*domain.Team, error) {
	for _, t := range r.teams {
		if t.Name == name {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

// ---------------------------------------------------------------------------
// Notes
// ---------------------------------------------------------------------------

type stubNoteRepo struct {
	seq   int64
	notes map[int64]*domain.Note
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{notes: make(map[int64]*domain.Note)}
}

func (r *stubNoteRepo) Create(_ context.Context, n *domain.Note) (*domain.Note, error) {
	r.seq++
	clone := *n
	clone.ID = r.seq
	clone.CreatedAt = time.Now()
	r.notes[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubNoteRepo) FindByID(_ context.Context, id int64) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok || n.Deleted {
		return nil, domain.ErrNoteNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNoteRepo) ListByTask(_ context.Context, taskID int64) ([]domain.Note, error) {
	var out []domain.Note
	for _, n := range r.notes {
		if n.TaskID == taskID && !n.Deleted {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubNoteRepo) SoftDelete(_ context.Context, id int64) error {
	n, ok := r.notes[id]
	if !ok || n.Deleted {
		return domain.ErrNoteNotFound
	}
	n.Deleted = true
	return nil
}

func (r *stubNoteRepo) deleteByTask(taskID int64) {
	for id, n := range r.notes {
		if n.TaskID == taskID {
			delete(r.notes, id)
		}
	}
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

// stubTaskRepo shares the note stub so compound updates land their audit
// note the way the transactional implementation does, and Delete cascades.
type stubTaskRepo struct {
	seq   int64
	tasks map[int64]*domain.Task
	notes *stubNoteRepo
}

func newStubTaskRepo(notes *stubNoteRepo) *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[int64]*domain.Task), notes: notes}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.seq++
	clone := *t
	clone.ID = r.seq
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.tasks[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) FindByTeamAndTitle(_ context.Context, teamID int64, title string) (*domain.Task, error) {
	for _, t := range r.tasks {
		if t.TeamID == teamID && t.Title == title {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) List(_ context.Context, f ports.ListTasksFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.TeamID != f.TeamID {
			continue
		}
		if f.AssigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *f.AssigneeID) {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.DueFrom != nil && (t.DueDate == nil || t.DueDate.Before(*f.DueFrom)) {
			continue
		}
		if f.DueTo != nil && (t.DueDate == nil || t.DueDate.After(*f.DueTo)) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, audit *domain.Note) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	return r.finishUpdate(ctx, t, audit)
}

func (r *stubTaskRepo) UpdateAssignee(ctx context.Context, id int64, assigneeID *int64, audit *domain.Note) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.AssigneeID = assigneeID
	t.UpdatedAt = time.Now()
	return r.finishUpdate(ctx, t, audit)
}

func (r *stubTaskRepo) Update(ctx context.Context, in *domain.Task, audit *domain.Note) (*domain.Task, error) {
	t, ok := r.tasks[in.ID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Title = in.Title
	t.Description = in.Description
	t.DueDate = in.DueDate
	t.Status = in.Status
	t.AssigneeID = in.AssigneeID
	t.UpdatedAt = time.Now()
	return r.finishUpdate(ctx, t, audit)
}

func (r *stubTaskRepo) finishUpdate(ctx context.Context, t *domain.Task, audit *domain.Note) (*domain.Task, error) {
	if audit != nil {
		if _, err := r.notes.Create(ctx, audit); err != nil {
			return nil, err
		}
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	r.notes.deleteByTask(id)
	return nil
}

// ---------------------------------------------------------------------------
// Sessions and password resets
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	seq    int
	tokens map[string]int64
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{tokens: make(map[string]int64)}
}

func (s *stubSessionStore) Create(_ context.Context, userID int64) (string, error) {
	s.seq++
	token := fmt.Sprintf("token-%d", s.seq)
	s.tokens[token] = userID
	return token, nil
}

func (s *stubSessionStore) Resolve(_ context.Context, token string) (int64, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	return userID, nil
}

func (s *stubSessionStore) Revoke(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

type stubResetRepo struct {
	seq     int64
	byToken map[string]*ports.PasswordReset
}

func newStubResetRepo() *stubResetRepo {
	return &stubResetRepo{byToken: make(map[string]*ports.PasswordReset)}
}

func (r *stubResetRepo) Create(_ context.Context, reset *ports.PasswordReset) error {
	r.seq++
	reset.ID = r.seq
	clone := *reset
	r.byToken[reset.Token] = &clone
	return nil
}

func (r *stubResetRepo) FindByToken(_ context.Context, token string) (*ports.PasswordReset, error) {
	reset, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrValidation
	}
	clone := *reset
	return &clone, nil
}

func (r *stubResetRepo) MarkUsed(_ context.Context, id int64) error {
	for _, reset := range r.byToken {
		if reset.ID == id {
			reset.Used = true
			return nil
		}
	}
	return nil
}
