package domain

import "errors"

// Sentinel errors shared by stores, services and transport.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	// ErrCorrupt marks stored data that exists but cannot be decoded.
	ErrCorrupt = errors.New("corrupt data")
)

// ValidationError rejects one input field. Message is shown to the user
// as is, so it is phrased for the browser client.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
