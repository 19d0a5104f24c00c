package ports

import (
	"context"

	"github.com/teamtasks/task-system/internal/core/domain"
)

// UserRepository defines persistence for team member accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByUsername matches the lowercase-normalised username and returns
	// the user regardless of the active flag; callers decide whether a
	// deactivated account may proceed.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ListByTeam returns the team's members. Deactivated accounts are
	// included only when includeInactive is set.
	ListByTeam(ctx context.Context, teamID int64, includeInactive bool) ([]domain.User, error)
	// Deactivate soft-deletes the account. Task assignments and authored
	// notes are left untouched.
	Deactivate(ctx context.Context, id int64) error
	UpdateRole(ctx context.Context, id int64, role string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	// Count returns the total number of accounts, active or not. Used to
	// gate the bootstrap flow.
	Count(ctx context.Context) (int64, error)
}
