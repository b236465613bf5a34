/*
errors.go - Centralized error types for the generic engine

PURPOSE:

	All sentinel errors in one place for consistency and discoverability.
	Domain packages define structured errors that unwrap to these.

ERROR CATEGORIES:
 1. Input errors - Malformed dates, months, numbers
 2. Validation errors - Business rule violations on save
 3. Lookup errors - Missing recruiters, entities, scenarios
 4. Conflict errors - Operations invalid for the current state

USAGE:

	Domain packages wrap generic errors:

	  func (e *CounterExceedsScoreError) Unwrap() error {
	      return generic.ErrValidation
	  }

	The API layer maps categories to status codes with the helpers below.

SEE ALSO:
  - compensation/errors.go: save-time validation errors
  - pipeline/errors.go: stage machine errors
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a date or month string cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput is returned for malformed request values other than dates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation is returned when data breaks a business rule and is rejected.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced recruiter or entity doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an operation is not valid in the current state.
	ErrConflict = errors.New("conflict")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError names the offending field of a rejected input.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidInput)
}

// IsValidation returns true if a business rule rejected the input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict returns true if the operation is invalid for the current state.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
