package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting administrator lacks the permission
// required for the requested state transition.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the requested transition would violate an
// invariant of the current state (e.g. deleting an owner).
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected failure that the caller cannot recover from.
var ErrInternal = errors.New("internal error")
