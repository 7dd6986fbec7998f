package v1

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/dvminh/minicms/internal/core/domain"
)

// CSRF secrets carry 32 bytes (256 bits) of entropy, hex-encoded.
const csrfSecretBytes = 32

// CsrfGuard issues and verifies per-session anti-forgery tokens. The
// token is minted lazily on first issue and stays stable until the
// session is destroyed.
type CsrfGuard struct {
	sessions domain.SessionRepository
}

// NewCsrfGuard creates a CsrfGuard backed by the given session repository.
func NewCsrfGuard(sessions domain.SessionRepository) *CsrfGuard {
	return &CsrfGuard{sessions: sessions}
}

// Issue returns the session's anti-forgery token, generating and
// persisting one if the session does not have one yet.
func (g *CsrfGuard) Issue(ctx context.Context, session *domain.SessionRow) (string, error) {
	if session.CsrfSecret != "" {
		return session.CsrfSecret, nil
	}

	b := make([]byte, csrfSecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate csrf secret: %w", err)
	}
	secret := hex.EncodeToString(b)

	if err := g.sessions.SetCsrfSecret(ctx, session.Token, secret); err != nil {
		return "", fmt.Errorf("persist csrf secret: %w", err)
	}
	session.CsrfSecret = secret

	return secret, nil
}

// Verify compares the presented token against the session's stored
// secret in constant time. A session without a secret, a nil session,
// and an empty presented token all verify as false.
func (g *CsrfGuard) Verify(session *domain.SessionRow, presented string) bool {
	if session == nil || session.CsrfSecret == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(session.CsrfSecret), []byte(presented)) == 1
}
