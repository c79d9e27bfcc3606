package service

import (
	"errors"
	"fmt"
)

// ErrBadRequest is the base error for requests that are well-formed but
// cannot be applied to the current state.
// API layer should map this to HTTP 400 Bad Request.
var ErrBadRequest = errors.New("bad request")

var (
	// ErrIDMismatch is returned when an update body names a different id than
	// the path.
	ErrIDMismatch = fmt.Errorf("%w: id mismatch", ErrBadRequest)

	// ErrStatusUnchanged is returned when a status change would set the
	// current value again.
	ErrStatusUnchanged = fmt.Errorf("%w: status unchanged", ErrBadRequest)
)

// ServiceError describes a failed service operation. Message is safe to show
// to clients; Err carries the cause and is matched with errors.Is.
type ServiceError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Entity, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Entity, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(entity, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// IsBadRequestError reports whether err is a request that cannot be applied.
func IsBadRequestError(err error) bool {
	return errors.Is(err, ErrBadRequest)
}
