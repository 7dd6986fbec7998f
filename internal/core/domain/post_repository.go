package domain

import (
	"context"
	"time"
)

// PostRow represents a post joined with its author's display name.
// Image is nil when the post has no image attached.
type PostRow struct {
	ID        int64
	Title     string
	Content   string
	Image     *string
	AuthorID  int64
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostRepository defines the data-access contract for post operations.
// Every operation is a single parameterized statement; caller-supplied
// strings are never interpolated into query text.
type PostRepository interface {
	// List returns all posts joined with author names, newest first.
	List(ctx context.Context) ([]PostRow, error)

	// GetByID returns the post with the given id, joined with its author.
	// Returns (nil, nil) when no post is found.
	GetByID(ctx context.Context, id int64) (*PostRow, error)

	// Create inserts a new post with created_at and updated_at set to the
	// same instant, returning the generated id.
	Create(ctx context.Context, title, content string, image *string, authorID int64) (int64, error)

	// Update rewrites title and content and refreshes updated_at.
	// The image reference is only touched when a new one is supplied;
	// passing nil preserves the stored image. Returns false when the
	// id matches no post.
	Update(ctx context.Context, id int64, title, content string, image *string) (bool, error)

	// Delete removes the post. Unknown ids are a no-op, not an error.
	Delete(ctx context.Context, id int64) error
}
