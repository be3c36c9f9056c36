package sched

import (
	"errors"
	"fmt"
)

// Validation error codes (E100-E109).
const (
	ErrBadClock        = "E100" // malformed HH:MM time field
	ErrNonPositiveSpan = "E101" // end <= start when deriving duration
	ErrEmptyLabel      = "E102" // task label is empty after normalization
)

// ValidationError represents a malformed-input rejection at the model
// boundary. The engine refuses to construct values that would violate
// an invariant rather than defaulting them.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
