package v1

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dvminh/minicms/internal/core/domain"
	"github.com/dvminh/minicms/middleware"
)

// AuthService implements registration, login, and logout.
// It depends on repository interfaces (injected via constructor) and
// MUST NOT access the database or SQL directly.
type AuthService struct {
	users    domain.UserRepository
	sessions *SessionManager
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(users domain.UserRepository, sessions *SessionManager) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Register hashes the password and inserts the user. A duplicate email
// surfaces as ErrDuplicateEmail and performs no write; the uniqueness
// check is the database constraint itself.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (int64, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	passwordHash, err := HashPassword(password)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.users.Create(ctx, name, email, passwordHash)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			span.SetAttributes(attribute.Bool("registration.success", false))
			return 0, fmt.Errorf("register %q: %w", email, ErrDuplicateEmail)
		}
		span.RecordError(err)
		return 0, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("user.id", userID),
		attribute.Bool("registration.success", true),
	)
	span.AddEvent("user.registered")

	return userID, nil
}

// Login verifies the credentials against the stored bcrypt digest and,
// on success, re-keys the presented session and marks it authenticated.
// Unknown email and wrong password produce the same error so responses
// cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, session *domain.SessionRow, email, password string) (*domain.SessionRow, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	row, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user: %w", err)
	}
	if row == nil || !CheckPassword(password, row.PasswordHash) {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate %q: %w", email, ErrInvalidCredentials)
	}

	// Fixation mitigation: the pre-login token must not survive into the
	// authenticated session.
	newToken, err := s.sessions.Regenerate(ctx, session.Token)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.sessions.Authenticate(ctx, newToken, row.ID, row.Name); err != nil {
		span.RecordError(err)
		return nil, err
	}

	authenticated := *session
	authenticated.Token = newToken
	authenticated.UserID = &row.ID
	authenticated.UserName = row.Name

	span.SetAttributes(
		attribute.Int64("user.id", row.ID),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return &authenticated, nil
}

// Logout destroys the session. The old token is invalid immediately.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx, span := middleware.StartSpan(ctx, "auth.logout", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if err := s.sessions.Destroy(ctx, token); err != nil {
		span.RecordError(err)
		return err
	}

	span.AddEvent("user.logged_out")
	return nil
}
