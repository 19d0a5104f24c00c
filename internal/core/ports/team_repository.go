package ports

import (
	"context"

	"github.com/teamtasks/task-system/internal/core/domain"
)

// TeamRepository defines persistence for tenant teams.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) (*domain.Team, error)
	FindByID(ctx context.Context, id int64) (*domain.Team, error)
	FindByName(ctx context.Context, name string) (*domain.Team, error)
}
