package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvminh/minicms/internal/core/domain"
)

// PgxSessionRepository implements domain.SessionRepository using pgxpool.
type PgxSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PgxSessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PgxSessionRepository {
	return &PgxSessionRepository{pool: pool}
}

// Create inserts a new anonymous session.
func (r *PgxSessionRepository) Create(ctx context.Context, token string, expiresAt time.Time) error {
	query := `INSERT INTO sessions (token, expires_at) VALUES ($1, $2)`
	_, err := r.pool.Exec(ctx, query, token, expiresAt)
	return err
}

// Get looks up a session by token.
// Returns (nil, nil) when the token does not match any session.
func (r *PgxSessionRepository) Get(ctx context.Context, token string) (*domain.SessionRow, error) {
	query := `
		SELECT token, user_id, user_name, csrf_secret, created_at, expires_at
		FROM sessions
		WHERE token = $1
	`

	var row domain.SessionRow
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&row.Token, &row.UserID, &row.UserName, &row.CsrfSecret, &row.CreatedAt, &row.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// ReplaceToken re-keys a session, keeping its user and CSRF state.
func (r *PgxSessionRepository) ReplaceToken(ctx context.Context, oldToken, newToken string) error {
	query := `UPDATE sessions SET token = $2 WHERE token = $1`
	_, err := r.pool.Exec(ctx, query, oldToken, newToken)
	return err
}

// SetUser marks the session as belonging to the given user.
func (r *PgxSessionRepository) SetUser(ctx context.Context, token string, userID int64, userName string) error {
	query := `UPDATE sessions SET user_id = $2, user_name = $3 WHERE token = $1`
	_, err := r.pool.Exec(ctx, query, token, userID, userName)
	return err
}

// SetCsrfSecret stores the session's anti-forgery secret.
func (r *PgxSessionRepository) SetCsrfSecret(ctx context.Context, token, secret string) error {
	query := `UPDATE sessions SET csrf_secret = $2 WHERE token = $1`
	_, err := r.pool.Exec(ctx, query, token, secret)
	return err
}

// Delete removes the session. Deleting an unknown token is a no-op.
func (r *PgxSessionRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = $1`
	_, err := r.pool.Exec(ctx, query, token)
	return err
}

// DeleteExpired removes all sessions past their expiry.
func (r *PgxSessionRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM sessions WHERE expires_at < now()`
	_, err := r.pool.Exec(ctx, query)
	return err
}
