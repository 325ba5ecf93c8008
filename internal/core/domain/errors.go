package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingToken       = errors.New("auth response missing token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// Errors raised by the development backend's in-memory store.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("access forbidden")
	ErrUserExists          = errors.New("email already registered")
	ErrUserBanned          = errors.New("account is banned")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoPostQuota         = errors.New("no active package with remaining posts")
)

// APIError is the normalized shape every gateway failure is converted into.
//
// Application errors carry the HTTP status and the parsed response body,
// which is whatever JSON value the backend sent (object, array or scalar).
// Network errors have NetworkError set, Status 0 and wrap the transport
// cause.
type APIError struct {
	Message      string
	Status       int
	Data         any
	NetworkError bool
	cause        error
}

// NewNetworkError builds the transport-level variant.
func NewNetworkError(message string, cause error) *APIError {
	return &APIError{Message: message, NetworkError: true, cause: cause}
}

func (e *APIError) Error() string {
	if e.NetworkError {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error { return e.cause }

// IsNetworkError reports whether err is a gateway failure where no response
// was received.
func IsNetworkError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.NetworkError
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// IsUnauthorized reports a 401 from the backend. Nothing in the client acts
// on it automatically; callers decide whether to drop the session.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}
