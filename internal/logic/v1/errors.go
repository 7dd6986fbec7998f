// Package v1 provides the CMS business logic for API version 1:
// credential hashing, session lifecycle, CSRF protection, and the
// user/post services.
//
// Error Handling:
// This package defines sentinel errors that represent the failure
// conditions callers are expected to branch on. Business methods wrap
// them with context using fmt.Errorf("%w") so handlers can translate
// with errors.Is without losing the call site.
//
// Example Usage:
//
//	if row == nil {
//	    return nil, fmt.Errorf("authenticate %q: %w", email, ErrInvalidCredentials)
//	}
//
// Error Checking (in handlers):
//
//	switch {
//	case errors.Is(err, logicv1.ErrInvalidCredentials):
//	    c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
//	case errors.Is(err, logicv1.ErrDuplicateEmail):
//	    c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
//	}
package v1

import (
	"errors"

	"github.com/dvminh/minicms/internal/core/domain"
)

// Sentinel errors for CMS operations.
var (
	// ErrInvalidCredentials indicates a failed login. The same error is
	// used whether the email is unknown or the password is wrong, so
	// responses cannot be used to enumerate accounts.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDuplicateEmail indicates a registration conflict on the email
	// uniqueness constraint.
	// HTTP Status: 409 Conflict
	ErrDuplicateEmail = domain.ErrDuplicateEmail

	// ErrCsrfMismatch indicates a state-mutating request with a missing
	// or stale anti-forgery token.
	// HTTP Status: 403 Forbidden
	ErrCsrfMismatch = errors.New("invalid CSRF token")

	// ErrUnauthenticated indicates access to a login-gated resource
	// without a valid authenticated session.
	// HTTP Status: 401 Unauthorized
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNotFound indicates a lookup by id with no match.
	// HTTP Status: 404 Not Found
	ErrNotFound = errors.New("not found")

	// ErrSessionNotFound indicates the presented session token does not
	// resolve to a live session.
	// HTTP Status: 401 Unauthorized
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidInput indicates missing or blank required fields.
	// HTTP Status: 400 Bad Request
	ErrInvalidInput = errors.New("title and content are required")

	// ErrGenerationFailed indicates the content-generation collaborator
	// failed: missing credential, transport failure, or an empty
	// upstream response.
	// HTTP Status: 500 Internal Server Error
	ErrGenerationFailed = errors.New("content generation failed")
)
