// Package v1 exposes the CMS over HTTP: session-cookie handling, CSRF
// gating, and translation of logic-layer failures into status codes.
package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dvminh/minicms/config"
	"github.com/dvminh/minicms/internal/core/domain"
	logicv1 "github.com/dvminh/minicms/internal/logic/v1"
	"github.com/dvminh/minicms/middleware"
)

// ContentGenerator drafts post body text from a title.
type ContentGenerator interface {
	Generate(ctx context.Context, title string) (string, error)
}

// Handler groups HTTP handlers for the CMS API v1.
// Dependencies are injected via the constructor — no global state.
type Handler struct {
	auth      *logicv1.AuthService
	posts     *logicv1.PostService
	sessions  *logicv1.SessionManager
	csrf      *logicv1.CsrfGuard
	assistant ContentGenerator
	uploads   *UploadStore

	cookieName   string
	cookieSecure bool
	cookieMaxAge int
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(
	auth *logicv1.AuthService,
	posts *logicv1.PostService,
	sessions *logicv1.SessionManager,
	csrf *logicv1.CsrfGuard,
	assistant ContentGenerator,
	uploads *UploadStore,
	cfg *config.Config,
) *Handler {
	return &Handler{
		auth:         auth,
		posts:        posts,
		sessions:     sessions,
		csrf:         csrf,
		assistant:    assistant,
		uploads:      uploads,
		cookieName:   cfg.Session.CookieName,
		cookieSecure: cfg.Session.CookieSecure,
		cookieMaxAge: int(cfg.GetSessionTTLDuration().Seconds()),
	}
}

// RegisterRoutes registers all CMS API v1 routes on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(h.WithSession())

	rg.GET("/posts", h.ListPosts)
	rg.GET("/posts/:id", h.GetPost)
	rg.GET("/csrf", h.GetCsrf)

	rg.POST("/auth/register", h.RequireCsrf(), h.Register)
	rg.POST("/auth/login", h.RequireCsrf(), h.Login)
	rg.POST("/auth/logout", h.Logout)
	rg.GET("/auth/me", h.RequireAuth(), h.GetMe)

	rg.POST("/posts", h.RequireAuth(), h.RequireCsrf(), h.CreatePost)
	rg.PUT("/posts/:id", h.RequireAuth(), h.RequireCsrf(), h.UpdatePost)
	rg.DELETE("/posts/:id", h.RequireAuth(), h.RequireCsrf(), h.DeletePost)

	rg.POST("/generate", h.RequireAuth(), h.RequireCsrf(), h.Generate)
}

// GetCsrf returns the session's anti-forgery token, starting a session
// for first-time visitors. Clients call this before any mutating request.
func (h *Handler) GetCsrf(c *gin.Context) {
	session, err := h.ensureSession(c)
	if err != nil {
		h.internalError(c, err, "Session start failed")
		return
	}

	token, err := h.csrf.Issue(c.Request.Context(), session)
	if err != nil {
		h.internalError(c, err, "CSRF issue failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"csrf_token": token})
}

// Register handles HTTP request for user registration.
func (h *Handler) Register(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.register", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.auth.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Msg("Registration failed")

		switch {
		case errors.Is(err, logicv1.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	logger.Info().Int64("user_id", userID).Msg("Registration successful")
	c.JSON(http.StatusCreated, gin.H{"id": userID})
}

// Login handles HTTP request for user login. On success the session is
// re-keyed and the fresh token replaces the cookie.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.login", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := h.currentSession(c)
	authenticated, err := h.auth.Login(ctx, session, req.Email, req.Password)
	if err != nil {
		span.RecordError(err)
		logger.Warn().Err(err).Msg("Login failed")

		switch {
		case errors.Is(err, logicv1.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	h.setSessionCookie(c, authenticated.Token)
	c.Set(sessionContextKey, authenticated)

	logger.Info().Int64("user_id", *authenticated.UserID).Msg("Login successful")
	c.JSON(http.StatusOK, gin.H{"user": domain.User{ID: *authenticated.UserID, Name: authenticated.UserName}})
}

// Logout destroys the session and expires the cookie.
func (h *Handler) Logout(c *gin.Context) {
	session := h.currentSession(c)
	if session != nil {
		if err := h.auth.Logout(c.Request.Context(), session.Token); err != nil {
			h.internalError(c, err, "Logout failed")
			return
		}
	}

	h.expireSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// GetMe returns the authenticated user attached to the session.
func (h *Handler) GetMe(c *gin.Context) {
	session := h.currentSession(c)
	c.JSON(http.StatusOK, domain.User{ID: *session.UserID, Name: session.UserName})
}

// ListPosts returns all posts, newest first. Public.
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "List posts failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost returns a single post by id. Public.
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, logicv1.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.internalError(c, err, "Get post failed")
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost stores a new post for the logged-in user. Multipart form:
// title, content, and an optional image file.
func (h *Handler) CreatePost(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.create_post", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	session := h.currentSession(c)

	image, ok := h.formImage(c)
	if !ok {
		return
	}

	postID, err := h.posts.Create(ctx, c.PostForm("title"), c.PostForm("content"), image, *session.UserID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, logicv1.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.internalError(c, err, "Create post failed")
		return
	}

	zerolog.Ctx(ctx).Info().Int64("post_id", postID).Int64("user_id", *session.UserID).Msg("Post created")
	c.JSON(http.StatusCreated, gin.H{"id": postID})
}

// UpdatePost rewrites a post's title and content. Omitting the image
// file preserves the stored image reference.
func (h *Handler) UpdatePost(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.update_post", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	id, ok := h.postID(c)
	if !ok {
		return
	}

	image, ok := h.formImage(c)
	if !ok {
		return
	}

	if err := h.posts.Update(ctx, id, c.PostForm("title"), c.PostForm("content"), image); err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, logicv1.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, logicv1.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		default:
			h.internalError(c, err, "Update post failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DeletePost removes a post by id. Deleting an unknown id still
// returns 204.
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), id); err != nil {
		h.internalError(c, err, "Delete post failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// Generate asks the content assistant for draft body text. The response
// shape mirrors the assistant contract: success with content, or the
// failure message verbatim.
func (h *Handler) Generate(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.generate", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Title is required"})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Title is required"})
		return
	}

	content, err := h.assistant.Generate(ctx, title)
	if err != nil {
		span.RecordError(err)
		zerolog.Ctx(ctx).Error().Err(err).Msg("Content generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": content})
}

// --- helpers ---

// ensureSession returns the request's session, starting a new one (and
// setting the cookie) for first-time visitors.
func (h *Handler) ensureSession(c *gin.Context) (*domain.SessionRow, error) {
	if session := h.currentSession(c); session != nil {
		return session, nil
	}

	session, err := h.sessions.Start(c.Request.Context())
	if err != nil {
		return nil, err
	}

	c.Set(sessionContextKey, session)
	h.setSessionCookie(c, session.Token)
	return session, nil
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
}

func (h *Handler) expireSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
}

func (h *Handler) postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return 0, false
	}
	return id, true
}

// formImage saves an uploaded image if one was attached. Returns
// (nil, true) when the form has no image, and (nil, false) after
// writing an error response.
func (h *Handler) formImage(c *gin.Context) (*string, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload"})
		return nil, false
	}

	name, err := h.uploads.Save(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	return &name, true
}

func (h *Handler) internalError(c *gin.Context, err error, msg string) {
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
