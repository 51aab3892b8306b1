package services

import (
	"errors"
	"fmt"
)

// Error classes. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
	ErrNotFound   = errors.New("not found")
)

// Error variables
var (
	ErrUserAlreadyExists  = fmt.Errorf("%w: username or email already exists", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrAuth)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrTodoNotFound       = fmt.Errorf("%w: todo not found", ErrNotFound)
)

// ValidationError describes a rejected input field. Its message is safe to show to clients.
type ValidationError struct {
	Field   string
	Message string
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
