package domain

import (
	"context"
	"time"
)

// SessionRow is one server-side session. UserID is nil for anonymous
// sessions; UserName caches the display name so rendering the current
// user does not require a join on every request.
type SessionRow struct {
	Token      string
	UserID     *int64
	UserName   string
	CsrfSecret string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Authenticated reports whether the session belongs to a logged-in user.
func (s *SessionRow) Authenticated() bool {
	return s != nil && s.UserID != nil
}

// SessionRepository defines the data-access contract for session state.
// Implementations live in internal/core/repository (Core layer).
type SessionRepository interface {
	// Create inserts a new anonymous session.
	Create(ctx context.Context, token string, expiresAt time.Time) error

	// Get looks up a session by token.
	// Returns (nil, nil) when the token does not match any session.
	Get(ctx context.Context, token string) (*SessionRow, error)

	// ReplaceToken re-keys a session, keeping its user and CSRF state.
	// The old token stops resolving the moment this returns.
	ReplaceToken(ctx context.Context, oldToken, newToken string) error

	// SetUser marks the session as belonging to the given user.
	SetUser(ctx context.Context, token string, userID int64, userName string) error

	// SetCsrfSecret stores the session's anti-forgery secret.
	SetCsrfSecret(ctx context.Context, token, secret string) error

	// Delete removes the session. Unknown tokens are not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all sessions past their expiry.
	DeleteExpired(ctx context.Context) error
}
