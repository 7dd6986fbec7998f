package v1

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dvminh/minicms/internal/core/domain"
)

// Session tokens carry 32 bytes of entropy, base64url-encoded.
const sessionTokenBytes = 32

// SessionManager owns the session lifecycle: creation, lookup,
// re-keying on login, and destruction. All state lives server-side in
// the SessionRepository; the client only ever holds the opaque token.
type SessionManager struct {
	sessions domain.SessionRepository
	ttl      time.Duration
}

// NewSessionManager creates a SessionManager with the given repository
// and session lifetime.
func NewSessionManager(sessions domain.SessionRepository, ttl time.Duration) *SessionManager {
	return &SessionManager{sessions: sessions, ttl: ttl}
}

// NewToken returns a cryptographically random session token.
func NewToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Start allocates a new anonymous session and returns it.
func (m *SessionManager) Start(ctx context.Context) (*domain.SessionRow, error) {
	token, err := NewToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	expiresAt := time.Now().Add(m.ttl)
	if err := m.sessions.Create(ctx, token, expiresAt); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &domain.SessionRow{Token: token, ExpiresAt: expiresAt}, nil
}

// Get resolves a token to its session. Unknown and expired tokens both
// resolve to (nil, nil) and are treated as anonymous; expired rows are
// removed on sight.
func (m *SessionManager) Get(ctx context.Context, token string) (*domain.SessionRow, error) {
	if token == "" {
		return nil, nil
	}

	row, err := m.sessions.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if row == nil {
		return nil, nil
	}

	if time.Now().After(row.ExpiresAt) {
		if err := m.sessions.Delete(ctx, token); err != nil {
			return nil, fmt.Errorf("drop expired session: %w", err)
		}
		return nil, nil
	}

	return row, nil
}

// Regenerate issues a fresh token for the same logical session,
// invalidating the old one. Called exactly once per successful login to
// defeat session fixation.
func (m *SessionManager) Regenerate(ctx context.Context, token string) (string, error) {
	newToken, err := NewToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	if err := m.sessions.ReplaceToken(ctx, token, newToken); err != nil {
		return "", fmt.Errorf("regenerate session: %w", err)
	}

	return newToken, nil
}

// Authenticate marks the session as belonging to the given user.
func (m *SessionManager) Authenticate(ctx context.Context, token string, userID int64, userName string) error {
	if err := m.sessions.SetUser(ctx, token, userID, userName); err != nil {
		return fmt.Errorf("authenticate session: %w", err)
	}
	return nil
}

// Destroy removes the session entirely. Requests presenting the old
// token afterwards are anonymous.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if err := m.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions past their expiry. Intended for a
// periodic janitor in main.
func (m *SessionManager) PurgeExpired(ctx context.Context) error {
	return m.sessions.DeleteExpired(ctx)
}
