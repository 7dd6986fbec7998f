package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvminh/minicms/internal/core/domain"
)

// PgxPostRepository implements domain.PostRepository using pgxpool.
type PgxPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new PgxPostRepository.
func NewPostRepository(pool *pgxpool.Pool) *PgxPostRepository {
	return &PgxPostRepository{pool: pool}
}

// List returns all posts joined with author names, newest first.
// Each call runs a fresh query.
func (r *PgxPostRepository) List(ctx context.Context) ([]domain.PostRow, error) {
	query := `
		SELECT p.id, p.title, p.content, p.image, p.author_id, u.name,
		       p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.PostRow
	for rows.Next() {
		var p domain.PostRow
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.Image, &p.AuthorID, &p.Author,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// GetByID returns the post with the given id, joined with its author.
// Returns (nil, nil) when no post is found.
func (r *PgxPostRepository) GetByID(ctx context.Context, id int64) (*domain.PostRow, error) {
	query := `
		SELECT p.id, p.title, p.content, p.image, p.author_id, u.name,
		       p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1
	`

	var p domain.PostRow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.Image, &p.AuthorID, &p.Author,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}

// Create inserts a new post. A single now() per statement guarantees
// created_at == updated_at on freshly created posts.
func (r *PgxPostRepository) Create(ctx context.Context, title, content string, image *string, authorID int64) (int64, error) {
	query := `
		INSERT INTO posts (title, content, image, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id
	`

	var postID int64
	err := r.pool.QueryRow(ctx, query, title, content, image, authorID).Scan(&postID)
	if err != nil {
		return 0, err
	}

	return postID, nil
}

// Update rewrites title and content and refreshes updated_at. The image
// column is only touched when a new reference is supplied; nil preserves
// the stored image rather than clearing it.
func (r *PgxPostRepository) Update(ctx context.Context, id int64, title, content string, image *string) (bool, error) {
	var (
		tag pgconn.CommandTag
		err error
	)

	if image != nil {
		query := `
			UPDATE posts
			SET title = $2, content = $3, image = $4, updated_at = now()
			WHERE id = $1
		`
		tag, err = r.pool.Exec(ctx, query, id, title, content, *image)
	} else {
		query := `
			UPDATE posts
			SET title = $2, content = $3, updated_at = now()
			WHERE id = $1
		`
		tag, err = r.pool.Exec(ctx, query, id, title, content)
	}
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes the post. Deleting an unknown id is a no-op.
func (r *PgxPostRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
