package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/ports"
)

const resetTokenTTL = 24 * time.Hour

// AuthService implements bootstrap, login/logout, and password reset on
// top of a server-side session store.
type AuthService struct {
	users    ports.UserRepository
	teams    ports.TeamRepository
	resets   ports.PasswordResetRepository
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	teams ports.TeamRepository,
	resets ports.PasswordResetRepository,
	sessions ports.SessionStore,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, teams: teams, resets: resets, sessions: sessions, logger: logger}
}

// normalizeUsername lowercases and trims so login is case-insensitive.
func normalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// Bootstrap creates the first team and its first manager. Refused once
// any account exists.
func (s *AuthService) Bootstrap(ctx context.Context, input ports.BootstrapInput) (*domain.User, error) {
	if input.TeamName == "" || input.FullName == "" || input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: all bootstrap fields are required", domain.ErrValidation)
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: system already bootstrapped", domain.ErrForbidden)
	}

	team, err := s.teams.Create(ctx, &domain.Team{Name: input.TeamName})
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Username:     normalizeUsername(input.Username),
		FullName:     input.FullName,
		PasswordHash: string(hash),
		Role:         domain.RoleManager,
		TeamID:       team.ID,
		Active:       true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("team", team.Name).Msg("system bootstrapped")
	return user, nil
}

// Login verifies the credentials and issues an opaque session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, normalizeUsername(username))
	if err != nil {
		// Same failure as a bad password so usernames cannot be probed.
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("login succeeded")
	return token, user, nil
}

// Logout revokes the session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, token)
}

// RequestPasswordReset issues a single-use reset token. Unknown usernames
// return an empty token without error.
func (s *AuthService) RequestPasswordReset(ctx context.Context, username string) (string, error) {
	user, err := s.users.FindByUsername(ctx, normalizeUsername(username))
	if err != nil {
		return "", nil
	}

	token := uuid.NewString()
	reset := &ports.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return "", err
	}

	s.logger.Info().Str("username", user.Username).Msg("password reset requested")
	return token, nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password cannot be empty", domain.ErrValidation)
	}

	reset, err := s.resets.FindByToken(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: invalid or expired reset token", domain.ErrValidation)
	}
	if reset.Used || time.Now().UTC().After(reset.ExpiresAt) {
		return fmt.Errorf("%w: invalid or expired reset token", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, reset.UserID, string(hash)); err != nil {
		return err
	}
	if err := s.resets.MarkUsed(ctx, reset.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", reset.UserID).Msg("password reset completed")
	return nil
}
