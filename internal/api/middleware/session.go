package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/teamtasks/task-system/internal/core/ports"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session"

// ContextUserKey is the echo context key the acting user is stored under.
const ContextUserKey = "current_user"

// Session resolves the acting user from the session token and injects it
// into the request context. The token is read from the session cookie or,
// as a fallback for non-browser clients, a bearer Authorization header.
// Missing, unknown, or expired tokens yield 401; deactivated accounts are
// treated as unauthenticated.
func Session(sessions ports.SessionStore, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			userID, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil || !user.Active {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set(ContextUserKey, user)
			c.Set("session_token", token)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
