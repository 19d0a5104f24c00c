package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/teamtasks/task-system/internal/core/domain"
)

type stubSessionStore struct {
	tokens map[string]int64
}

func (s *stubSessionStore) Create(_ context.Context, userID int64) (string, error) {
	return "tok", nil
}

func (s *stubSessionStore) Resolve(_ context.Context, token string) (int64, error) {
	id, ok := s.tokens[token]
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	return id, nil
}

func (s *stubSessionStore) Revoke(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

type stubUserLookup struct {
	users map[int64]*domain.User
}

func (s *stubUserLookup) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}
func (s *stubUserLookup) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
func (s *stubUserLookup) FindByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserLookup) ListByTeam(_ context.Context, _ int64, _ bool) ([]domain.User, error) {
	return nil, nil
}
func (s *stubUserLookup) Deactivate(_ context.Context, _ int64) error { return nil }
func (s *stubUserLookup) UpdateRole(_ context.Context, _ int64, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserLookup) UpdatePassword(_ context.Context, _ int64, _ string) error { return nil }
func (s *stubUserLookup) Count(_ context.Context) (int64, error)                    { return 0, nil }

func newSessionTest(t *testing.T) (echo.MiddlewareFunc, *stubSessionStore, *stubUserLookup) {
	t.Helper()
	sessions := &stubSessionStore{tokens: map[string]int64{"live-token": 7}}
	users := &stubUserLookup{users: map[int64]*domain.User{
		7: {ID: 7, Username: "alice", Role: domain.RoleManager, TeamID: 1, Active: true},
	}}
	return Session(sessions, users), sessions, users
}

func TestSession_CookieToken(t *testing.T) {
	mw, _, _ := newSessionTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "live-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *domain.User
	handler := mw(func(c echo.Context) error {
		got, _ = c.Get(ContextUserKey).(*domain.User)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got == nil || got.ID != 7 {
		t.Fatalf("expected user 7 in context, got %+v", got)
	}
}

func TestSession_BearerFallback(t *testing.T) {
	mw, _, _ := newSessionTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer live-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_MissingToken(t *testing.T) {
	mw, _, _ := newSessionTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSession_UnknownToken(t *testing.T) {
	mw, _, _ := newSessionTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return nil })
	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSession_DeactivatedUser(t *testing.T) {
	mw, _, users := newSessionTest(t)
	users.users[7].Active = false

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "live-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return nil })
	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deactivated account, got %v", err)
	}
}
