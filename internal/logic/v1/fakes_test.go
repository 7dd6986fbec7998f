package v1

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dvminh/minicms/internal/core/domain"
)

// memSessionRepo is an in-memory domain.SessionRepository for tests.
type memSessionRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.SessionRow
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{rows: make(map[string]*domain.SessionRow)}
}

func (r *memSessionRepo) Create(_ context.Context, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[token] = &domain.SessionRow{Token: token, CreatedAt: time.Now(), ExpiresAt: expiresAt}
	return nil
}

func (r *memSessionRepo) Get(_ context.Context, token string) (*domain.SessionRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[token]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *memSessionRepo) ReplaceToken(_ context.Context, oldToken, newToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[oldToken]; ok {
		delete(r.rows, oldToken)
		row.Token = newToken
		r.rows[newToken] = row
	}
	return nil
}

func (r *memSessionRepo) SetUser(_ context.Context, token string, userID int64, userName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[token]; ok {
		row.UserID = &userID
		row.UserName = userName
	}
	return nil
}

func (r *memSessionRepo) SetCsrfSecret(_ context.Context, token, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[token]; ok {
		row.CsrfSecret = secret
	}
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, token)
	return nil
}

func (r *memSessionRepo) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for token, row := range r.rows {
		if now.After(row.ExpiresAt) {
			delete(r.rows, token)
		}
	}
	return nil
}

// memUserRepo is an in-memory domain.UserRepository for tests.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.UserRow
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.UserRow)}
}

func (r *memUserRepo) Create(_ context.Context, name, email, passwordHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[email]; exists {
		return 0, domain.ErrDuplicateEmail
	}
	r.nextID++
	r.users[email] = &domain.UserRow{
		ID:           r.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	return r.nextID, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.UserRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

// memPostRepo is an in-memory domain.PostRepository for tests.
type memPostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*domain.PostRow
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[int64]*domain.PostRow)}
}

func (r *memPostRepo) List(_ context.Context) ([]domain.PostRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]domain.PostRow, 0, len(r.posts))
	for _, p := range r.posts {
		rows = append(rows, *p)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (r *memPostRepo) GetByID(_ context.Context, id int64) (*domain.PostRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *memPostRepo) Create(_ context.Context, title, content string, image *string, authorID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	r.posts[r.nextID] = &domain.PostRow{
		ID:        r.nextID,
		Title:     title,
		Content:   content,
		Image:     image,
		AuthorID:  authorID,
		Author:    "author",
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.nextID, nil
}

func (r *memPostRepo) Update(_ context.Context, id int64, title, content string, image *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.posts[id]
	if !ok {
		return false, nil
	}
	row.Title = title
	row.Content = content
	if image != nil {
		row.Image = image
	}
	row.UpdatedAt = time.Now()
	return true, nil
}

func (r *memPostRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}
