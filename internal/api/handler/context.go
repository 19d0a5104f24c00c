package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamtasks/task-system/internal/api/middleware"
	"github.com/teamtasks/task-system/internal/core/domain"
)

// ctxUser extracts the acting user injected by the Session middleware and
// fast-fails before any service call: presence proves the middleware ran.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
