package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidPage  = errors.New("invalid page")
	ErrNoSession    = errors.New("no session")
	ErrSuperseded   = errors.New("superseded by a newer request")

	// Failure kinds reported by the REST collaborator.
	ErrTransport    = errors.New("transport failure")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation rejected")
	ErrServer       = errors.New("server failure")
)

// APIError is a classified failure of a REST call. Kind is one of the failure
// kind sentinels above; Message is the backend's human-readable message, if any.
type APIError struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s (%d)", e.Kind, e.Status)
	}
	return e.Kind.Error()
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message returns the backend message carried by err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusKind maps an HTTP status code to a failure kind.
func StatusKind(status int) error {
	switch status {
	case 401:
		return ErrUnauthorized
	case 400, 422:
		return ErrValidation
	}
	return ErrServer
}
