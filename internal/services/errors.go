package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input rejected before touching storage.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials is returned for any failed login. It does not say
	// whether the username exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned for missing tasks and for tasks owned by someone else.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes a single rejected input field. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
