package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/ports"
)

// TeamService implements membership management for the actor's team.
type TeamService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTeamService(users ports.UserRepository, logger zerolog.Logger) *TeamService {
	return &TeamService{users: users, logger: logger}
}

// AddMember creates a new account in the actor's team. Manager-only.
func (s *TeamService) AddMember(ctx context.Context, actor *domain.User, input ports.AddMemberInput) (*domain.User, error) {
	if !domain.CanManageTeam(actor, actor.TeamID) {
		return nil, domain.ErrForbidden
	}
	if input.FullName == "" || input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: full name, username and password are required", domain.ErrValidation)
	}
	if input.Role != domain.RoleManager && input.Role != domain.RoleMember {
		return nil, fmt.Errorf("%w: role must be %s or %s", domain.ErrValidation, domain.RoleManager, domain.RoleMember)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Username:     normalizeUsername(input.Username),
		FullName:     input.FullName,
		PasswordHash: string(hash),
		Role:         input.Role,
		TeamID:       actor.TeamID,
		Active:       true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Int64("team_id", user.TeamID).Msg("member added")
	return user, nil
}

// RemoveMember soft-deactivates the account. The member's task
// assignments and authored notes stay in place so history keeps
// resolving; readers see a deactivated-assignee warning instead.
func (s *TeamService) RemoveMember(ctx context.Context, actor *domain.User, userID int64) error {
	target, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !domain.CanManageTeam(actor, target.TeamID) {
		return domain.ErrForbidden
	}
	if target.ID == actor.ID {
		return fmt.Errorf("%w: cannot deactivate your own account", domain.ErrValidation)
	}

	if err := s.users.Deactivate(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("username", target.Username).Str("actor", actor.Username).Msg("member deactivated")
	return nil
}

// ChangeRole switches a member between manager and member. Manager-only.
func (s *TeamService) ChangeRole(ctx context.Context, actor *domain.User, userID int64, role string) (*domain.User, error) {
	if role != domain.RoleManager && role != domain.RoleMember {
		return nil, fmt.Errorf("%w: role must be %s or %s", domain.ErrValidation, domain.RoleManager, domain.RoleMember)
	}

	target, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageTeam(actor, target.TeamID) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", target.Username).Str("role", role).Str("actor", actor.Username).Msg("role changed")
	return updated, nil
}

// ListMembers lists the actor's team. Any member may read the roster;
// deactivated accounts are visible to managers only.
func (s *TeamService) ListMembers(ctx context.Context, actor *domain.User, includeInactive bool) ([]domain.User, error) {
	if includeInactive && !actor.IsManager() {
		includeInactive = false
	}
	return s.users.ListByTeam(ctx, actor.TeamID, includeInactive)
}
