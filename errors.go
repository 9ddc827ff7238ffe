package vesselfinder

import (
	"github.com/vesselfinder/client-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey

	// ErrGeneral is matched by every *Error, whatever its kind.
	ErrGeneral = apierrors.ErrGeneral

	// ErrInvalidArguments is matched when parameters failed validation.
	// Nothing was sent to the server.
	ErrInvalidArguments = apierrors.ErrInvalidArguments

	// ErrRequestError is matched when the server rejected the request,
	// either with HTTP 409 in error mode or with an X-API-Error header.
	ErrRequestError = apierrors.ErrRequestError

	// ErrLastInfoDisabled is returned by LastInfo when the client was
	// created with WithSaveLastInfo(false).
	ErrLastInfoDisabled = apierrors.ErrLastInfoDisabled
)

// VesselFinderError is implemented by all SDK errors.
type VesselFinderError interface {
	error
	VesselFinderError() // marker method
}

// Error is a client failure. Inspect Kind, or match with errors.Is
// against ErrInvalidArguments, ErrRequestError or ErrGeneral.
type Error = apierrors.Error

// Kind discriminates Error values.
type Kind = apierrors.Kind

// Error kinds.
const (
	KindGeneral          = apierrors.KindGeneral
	KindInvalidArguments = apierrors.KindInvalidArguments
	KindRequestError     = apierrors.KindRequestError
)

// NetworkError represents a transport-level failure. The error returned
// by the HTTP client is available through errors.Unwrap.
type NetworkError = apierrors.NetworkError
