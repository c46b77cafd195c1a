package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound: the question (or the question an answer targets) does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists: a client-supplied or colliding id was reused.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation: the post was rejected before it reached storage.
	ErrValidation = errors.New("validation error")
)

// FieldError names one rejected input field.
type FieldError struct {
	Field   string
	Message string
}

func (fe FieldError) String() string { return fe.Field + ": " + fe.Message }

// ValidationError collects every field rejected in one request. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.String()
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Field returns the first error recorded for name.
func (e *ValidationError) Field(name string) (FieldError, bool) {
	for _, fe := range e.Errors {
		if fe.Field == name {
			return fe, true
		}
	}
	return FieldError{}, false
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
