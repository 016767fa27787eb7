// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input provided")
	ErrDuplicateEntry  = errors.New("duplicate entry") // For cases like creating a user with an existing username
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	// Add more specific errors as needed
)

// IsError reports whether err matches target, unwrapping wrapped errors.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
