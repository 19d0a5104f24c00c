package ports

import (
	"context"
	"time"
)

// SessionStore maps opaque session tokens to user ids with expiry.
// Pluggable so tests can substitute an in-memory implementation for the
// Redis-backed one.
type SessionStore interface {
	// Create issues a fresh opaque token for the user.
	Create(ctx context.Context, userID int64) (string, error)
	// Resolve returns the user id for a live token, or
	// domain.ErrUnauthenticated when the token is unknown or expired.
	Resolve(ctx context.Context, token string) (int64, error)
	// Revoke invalidates the token (logout). Revoking an unknown token is
	// not an error.
	Revoke(ctx context.Context, token string) error
}

// PasswordReset is a stored single-use reset token.
type PasswordReset struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Used      bool
}

// PasswordResetRepository persists single-use password reset tokens.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *PasswordReset) error
	FindByToken(ctx context.Context, token string) (*PasswordReset, error)
	MarkUsed(ctx context.Context, id int64) error
}
