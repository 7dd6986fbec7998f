package v1

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dvminh/minicms/internal/core/domain"
	"github.com/dvminh/minicms/middleware"
)

// PostService implements the post lifecycle over the repository.
// Authorization is the caller's concern: any authenticated session may
// create, update, or delete any post.
type PostService struct {
	posts domain.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// List returns all posts, newest first, with author names attached.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	ctx, span := middleware.StartSpan(ctx, "posts.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	rows, err := s.posts.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, domain.PostFromRow(r))
	}

	span.SetAttributes(attribute.Int("posts.count", len(posts)))
	return posts, nil
}

// Get returns the post with the given id or ErrNotFound.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	ctx, span := middleware.StartSpan(ctx, "posts.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("post.id", id),
	))
	defer span.End()

	row, err := s.posts.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query post %d: %w", id, err)
	}
	if row == nil {
		return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}

	post := domain.PostFromRow(*row)
	return &post, nil
}

// Create stores a new post for the given author. Title and content are
// trimmed and must be non-empty; image is optional.
func (s *PostService) Create(ctx context.Context, title, content string, image *string, authorID int64) (int64, error) {
	ctx, span := middleware.StartSpan(ctx, "posts.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("user.id", authorID),
	))
	defer span.End()

	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		return 0, ErrInvalidInput
	}

	postID, err := s.posts.Create(ctx, title, content, image, authorID)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("insert post: %w", err)
	}

	span.SetAttributes(attribute.Int64("post.id", postID))
	span.AddEvent("post.created")

	return postID, nil
}

// Update rewrites title and content and refreshes updated_at. A nil
// image preserves the stored reference; this is a partial-update
// contract, not a clear-image operation. Unknown ids yield ErrNotFound.
func (s *PostService) Update(ctx context.Context, id int64, title, content string, image *string) error {
	ctx, span := middleware.StartSpan(ctx, "posts.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("post.id", id),
	))
	defer span.End()

	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		return ErrInvalidInput
	}

	updated, err := s.posts.Update(ctx, id, title, content, image)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("update post %d: %w", id, err)
	}
	if !updated {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}

	span.AddEvent("post.updated")
	return nil
}

// Delete removes the post by id. Deleting an id that does not exist is
// a no-op, not an error.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	ctx, span := middleware.StartSpan(ctx, "posts.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("post.id", id),
	))
	defer span.End()

	if err := s.posts.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete post %d: %w", id, err)
	}

	span.AddEvent("post.deleted")
	return nil
}
