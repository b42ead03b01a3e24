package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated indicates a missing, invalid or expired bearer token.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// FieldErrors maps a request field to its first failed validation message.
type FieldErrors map[string]string

// ValidationError carries the field error set for a rejected payload.
type ValidationError struct {
	Fields FieldErrors
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError wraps a field error set.
func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
