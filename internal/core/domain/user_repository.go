package domain

import (
	"context"
	"time"
)

// UserRow represents a user record returned from the database.
// It includes the password hash so the Logic layer can verify credentials.
type UserRow struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines the data-access contract for user operations.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only — never on SQL or pgx directly.
type UserRepository interface {
	// Create inserts a new user and returns the generated user ID.
	// Email uniqueness is enforced by the database constraint, not by a
	// check-then-insert, so concurrent registrations cannot race. A
	// violation is reported as ErrDuplicateEmail.
	Create(ctx context.Context, name, email, passwordHash string) (int64, error)

	// GetByEmail returns the user matching the given email.
	// Returns (nil, nil) when no user is found.
	GetByEmail(ctx context.Context, email string) (*UserRow, error)
}
