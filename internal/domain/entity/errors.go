package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the fetch adapter and the use cases.
// They mirror the failure taxonomy of the remote API.
var (
	// ErrNotFound indicates that a keyed lookup returned nothing
	ErrNotFound = errors.New("entity not found")

	// ErrUnauthorized indicates a missing session or insufficient role
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRejected indicates the API answered but refused the operation
	ErrRejected = errors.New("request rejected")

	// ErrUpstream indicates the API could not be reached
	ErrUpstream = errors.New("upstream unavailable")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ValidationErrors collects every field failure of one form submission.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Is lets errors.Is(err, ErrValidationFailed) match a non-empty collection.
func (errs ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed && len(errs) > 0
}

// Field returns the message for field, or "".
func (errs ValidationErrors) Field(field string) string {
	for _, e := range errs {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// ErrOrNil returns nil for an empty collection so callers can return it directly.
func (errs ValidationErrors) ErrOrNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
