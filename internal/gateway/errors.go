package gateway

import (
	"errors"
	"fmt"
)

// The gateway classifies every failure into one of three kinds. Validation
// errors never reach the network; network errors mean no usable response;
// server errors carry the backend's status and message. Read-side callers
// scope the failure to the one UI region it feeds.

// ValidationError wraps a locally detected bad input.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// NetworkError wraps a transport-level failure (dial, timeout, body read).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is any non-2xx response, regardless of body content.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// IsValidation reports whether err was rejected before any network call.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validationErr(err error) error {
	return &ValidationError{Err: err}
}
