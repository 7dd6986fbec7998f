package domain

import "time"

// User is the API-facing shape of a user. The password hash never leaves
// the Logic layer.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Post is the API-facing shape of a post, with the author denormalized.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     *string   `json:"image"`
	Author    string    `json:"author"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest is the login form body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the registration form body.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GenerateRequest asks the content assistant for a draft body text.
type GenerateRequest struct {
	Title string `json:"title" binding:"required"`
}

// PostFromRow converts a repository row into the API shape.
func PostFromRow(r PostRow) Post {
	return Post{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Image:     r.Image,
		Author:    r.Author,
		AuthorID:  r.AuthorID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
