package cases

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a business-rule failure. Repository faults are the
// only errors that reach handlers without a kind; they map to
// DATABASE_ERROR at the boundary.
type ErrorKind string

const (
	KindValidation      ErrorKind = "VALIDATION_ERROR"
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindInvalidState    ErrorKind = "INVALID_STATE"
	KindForbidden       ErrorKind = "FORBIDDEN"
	KindSafetyViolation ErrorKind = "SAFETY_VIOLATION"
	KindDatabase        ErrorKind = "DATABASE_ERROR"
)

// FieldError is one entry of a validation failure, keyed by field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Fault is a recoverable business-rule failure with enough detail for the
// caller to self-correct.
type Fault struct {
	Kind    ErrorKind   `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func validationFault(fieldErrs []FieldError) *Fault {
	return &Fault{Kind: KindValidation, Message: "input validation failed", Details: fieldErrs}
}

// NewValidationFault builds a VALIDATION_ERROR fault for use by packages
// that feed into the case workflow.
func NewValidationFault(message string, fieldErrs ...FieldError) *Fault {
	f := &Fault{Kind: KindValidation, Message: message}
	if len(fieldErrs) > 0 {
		f.Details = fieldErrs
	}
	return f
}

func notFoundFault(what string) *Fault {
	return &Fault{Kind: KindNotFound, Message: what + " not found"}
}

// AsFault unwraps a Fault from an error chain, or wraps a plain error as a
// DATABASE_ERROR fault for the response boundary.
func AsFault(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return &Fault{Kind: KindDatabase, Message: "internal storage error"}
}
