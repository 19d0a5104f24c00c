package ports

import (
	"context"

	"github.com/teamtasks/task-system/internal/core/domain"
)

// AddMemberInput creates a new account in the actor's team.
type AddMemberInput struct {
	FullName string
	Username string
	Password string
	Role     string
}

// TeamService defines membership management. All mutations are
// manager-only and scoped to the actor's own team.
type TeamService interface {
	AddMember(ctx context.Context, actor *domain.User, input AddMemberInput) (*domain.User, error)
	// RemoveMember soft-deactivates the account; tasks and notes remain.
	RemoveMember(ctx context.Context, actor *domain.User, userID int64) error
	ChangeRole(ctx context.Context, actor *domain.User, userID int64, role string) (*domain.User, error)
	ListMembers(ctx context.Context, actor *domain.User, includeInactive bool) ([]domain.User, error)
}
