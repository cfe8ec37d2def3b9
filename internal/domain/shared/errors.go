// Package shared contains common domain types and errors that are used across
// all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConversion      = errors.New("value is not a number")
	ErrValueOutOfRange = errors.New("value out of range")

	// State errors
	ErrEmptyStudentList = errors.New("student list is empty")

	// Input stream errors
	ErrEndOfInput = errors.New("end of input")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "student", "console", "report"
	Op      string // Operation that failed, e.g., "PromptGrade"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Student domain errors
var (
	ErrGradeOutOfRange    = NewDomainError("student", "Validate", ErrValueOutOfRange, "grade must be strictly between 1 and 101")
	ErrInvalidSubject     = NewDomainError("student", "Validate", ErrInvalidInput, "unknown subject")
	ErrMissingRecordID    = NewDomainError("student", "Create", ErrInvalidInput, "record id is required")
	ErrStudentCountTooLow = NewDomainError("student", "Validate", ErrValueOutOfRange, "number of students must be at least 1")
)

// Report errors
var (
	ErrNoStudents = NewDomainError("report", "Aggregate", ErrEmptyStudentList, "at least one student is required")
)

// IsValidation checks if the error is a validation error.
// Conversion failures count as validation: the user typed something
// that cannot be accepted and may simply try again.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrConversion) ||
		errors.Is(err, ErrValueOutOfRange)
}

// IsEndOfInput checks if the input stream is exhausted.
func IsEndOfInput(err error) bool {
	return errors.Is(err, ErrEndOfInput)
}
