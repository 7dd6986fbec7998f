package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dvminh/minicms/internal/core/domain"
)

// CsrfHeader carries the anti-forgery token on state-mutating requests.
// Form submissions may carry it in the csrf_token field instead.
const CsrfHeader = "X-CSRF-Token"

const sessionContextKey = "cms_session"

// WithSession resolves the session cookie and stores the session row
// (nil for anonymous visitors) on the gin context for the handlers.
func (h *Handler) WithSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.cookieName)
		if err != nil {
			c.Next()
			return
		}

		session, err := h.sessions.Get(c.Request.Context(), token)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if session != nil {
			c.Set(sessionContextKey, session)
		}

		c.Next()
	}
}

// RequireAuth gates a route behind "must have an authenticated session".
// This is the only authorization primitive in the system: there is no
// per-post ownership check, so any logged-in user may update or delete
// any post.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.currentSession(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}

// RequireCsrf verifies the anti-forgery token before the handler reads
// anything else from the request. The token comes from the X-CSRF-Token
// header or, for form posts, the csrf_token field.
func (h *Handler) RequireCsrf() gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(CsrfHeader)
		if presented == "" {
			presented = c.PostForm("csrf_token")
		}

		if !h.csrf.Verify(h.currentSession(c), presented) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid CSRF token"})
			return
		}

		c.Next()
	}
}

// currentSession returns the session stored by WithSession, or nil.
func (h *Handler) currentSession(c *gin.Context) *domain.SessionRow {
	if v, ok := c.Get(sessionContextKey); ok {
		if s, ok := v.(*domain.SessionRow); ok {
			return s
		}
	}
	return nil
}
