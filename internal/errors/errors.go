// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to API callers. Match with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrIntegrityViolation = errors.New("integrity violation")
	ErrValidation         = errors.New("validation error")
)

// AppError carries a kind plus the message shown to the client.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

// Helper constructors

func NewNotFound(format string, args ...any) error {
	return &AppError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...any) error {
	return &AppError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func NewIntegrityViolation(format string, args ...any) error {
	return &AppError{Kind: ErrIntegrityViolation, Message: fmt.Sprintf(format, args...)}
}

func NewValidation(format string, args ...any) error {
	return &AppError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Message returns the client-facing text of err when it is an *AppError.
func Message(err error) (string, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message, true
	}
	return "", false
}
