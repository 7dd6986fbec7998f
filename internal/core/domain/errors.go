package domain

import "errors"

// ErrDuplicateEmail is reported by UserRepository.Create when the email
// uniqueness constraint is violated. It lives here so repositories can
// signal the conflict without the Logic layer depending on pgx error codes.
var ErrDuplicateEmail = errors.New("email already registered")
