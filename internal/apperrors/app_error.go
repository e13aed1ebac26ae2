package apperrors

import (
	"errors"
	"fmt"
)

// AppError carries an HTTP-ish status code alongside the wrapped cause so
// repositories can classify failures without importing transport packages.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	switch e.Code {
	case 404:
		return ErrNotFound
	case 403:
		return ErrForbidden
	case 409:
		return ErrConflict
	case 400:
		return ErrValidation
	}
	return ErrInternal
}

// NewAppError wraps an unexpected failure with a status code and context message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message}
}

// NewForbiddenError reports a refused action; the prior state is untouched.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: 403, Message: message}
}

// NewConflictError reports a uniqueness or invariant conflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message}
}

// NewValidationFailedError reports rejected input.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message}
}

// FieldConflictError reports a duplicate unique key naming the offending field,
// so callers can re-prompt for just that field.
type FieldConflictError struct {
	Field string
	Value string
}

func (e *FieldConflictError) Error() string {
	return fmt.Sprintf("%s %q is already in use", e.Field, e.Value)
}

func (e *FieldConflictError) Unwrap() error { return ErrDuplicate }

// NewFieldConflictError builds a named-field duplicate error.
func NewFieldConflictError(field, value string) *FieldConflictError {
	return &FieldConflictError{Field: field, Value: value}
}

// StatusCode maps an error to the HTTP status handlers should respond with.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return 409
	case errors.Is(err, ErrValidation):
		return 400
	}
	return 500
}
