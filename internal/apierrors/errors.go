// Package apierrors provides shared error types for the VesselFinder client.
package apierrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrGeneral matches every error produced by the VesselFinder client.
	ErrGeneral = errors.New("vesselfinder API error")

	// ErrInvalidArguments is matched by errors raised when parameters fail
	// client-side validation. No request is sent in that case.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrRequestError is matched by errors raised when the server rejected
	// the request.
	ErrRequestError = errors.New("request error")

	// ErrLastInfoDisabled is returned when response metadata is read from a
	// client that was configured not to keep it.
	ErrLastInfoDisabled = errors.New("last info is not saved: create the client with WithSaveLastInfo(true)")
)

// Kind discriminates the failure families of the client.
type Kind int

const (
	// KindGeneral is the catch-all kind.
	KindGeneral Kind = iota
	// KindInvalidArguments means validation failed before any network call.
	KindInvalidArguments
	// KindRequestError means the server signaled a rejection.
	KindRequestError
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArguments:
		return "invalid arguments"
	case KindRequestError:
		return "request error"
	default:
		return "general"
	}
}

// Error is a failure raised by the client.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int    // set for request errors
	RequestID  string // X-Request-ID sent with the request, if any
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.RequestID != "" {
		return fmt.Sprintf("%s (request_id: %s)", msg, e.RequestID)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
// Every kind matches ErrGeneral.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrGeneral:
		return true
	case ErrInvalidArguments:
		return e.Kind == KindInvalidArguments
	case ErrRequestError:
		return e.Kind == KindRequestError
	}
	return false
}

// InvalidArguments returns an invalid-arguments error with a formatted message.
func InvalidArguments(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArguments, Message: fmt.Sprintf(format, args...)}
}

// RequestError returns a request error carrying the server's message.
func RequestError(statusCode int, message string) *Error {
	return &Error{Kind: KindRequestError, StatusCode: statusCode, Message: message}
}

// General returns a general error wrapping err.
func General(message string, err error) *Error {
	return &Error{Kind: KindGeneral, Message: message, Err: err}
}

// NetworkError represents a transport-level failure. The underlying error
// is kept as is and reachable through Unwrap.
type NetworkError struct {
	Err       error
	URL       string
	RequestID string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// VesselFinderError marks Error as a client error.
func (e *Error) VesselFinderError() {}

// VesselFinderError marks NetworkError as a client error.
func (e *NetworkError) VesselFinderError() {}
