package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of these so transport
// layers can classify failures with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication failed")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("access forbidden")
)

var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrFriendshipNotFound = fmt.Errorf("friendship %w", ErrNotFound)
	ErrPostNotFound       = fmt.Errorf("post %w", ErrNotFound)

	ErrUserExists        = fmt.Errorf("%w: username already taken", ErrConflict)
	ErrDuplicateRequest  = fmt.Errorf("%w: a pending friend request already exists", ErrConflict)
	ErrAlreadyFriends    = fmt.Errorf("%w: users are already friends", ErrConflict)
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)
)

// ValidationError reports a single field constraint violation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
