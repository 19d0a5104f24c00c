package ports

import (
	"context"

	"github.com/teamtasks/task-system/internal/core/domain"
)

// BootstrapInput creates the first team and its first manager. Only valid
// while no accounts exist.
type BootstrapInput struct {
	TeamName string
	FullName string
	Username string
	Password string
}

// AuthService implements session-based authentication.
type AuthService interface {
	Bootstrap(ctx context.Context, input BootstrapInput) (*domain.User, error)
	// Login verifies credentials and issues an opaque session token.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	// RequestPasswordReset issues a single-use reset token for the account.
	// An unknown username returns an empty token and no error, so the
	// endpoint does not reveal which accounts exist.
	RequestPasswordReset(ctx context.Context, username string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}
