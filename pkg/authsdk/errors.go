package authsdk

import (
	"errors"
	"net/http"
)

// Error taxonomy for auth operations. Every failure returned by this package
// matches exactly one of these sentinels under errors.Is.
var (
	// ErrNotAuthorized is returned when the caller is not authorized to
	// perform the requested operation (HTTP 401/403).
	ErrNotAuthorized = errors.New("authsdk: not authorized")

	// ErrInvalidParameters is returned for invalid input, either rejected
	// locally before any network call or by the service (HTTP 400/422).
	ErrInvalidParameters = errors.New("authsdk: invalid parameters")

	// ErrHTTP is returned for transport-level failures: the request could
	// not be sent or the response body could not be read.
	ErrHTTP = errors.New("authsdk: http error")

	// ErrInternal is returned when a successful exchange carries a payload
	// that violates the expected shape, or when the backing data
	// contradicts itself (e.g. two rows for one unique id). It signals a
	// contract mismatch with the service, not a caller error.
	ErrInternal = errors.New("authsdk: internal library error")

	// ErrNotFound is returned when the requested resource does not exist
	// (HTTP 406 from the auth endpoints).
	ErrNotFound = errors.New("authsdk: resource not found")

	// ErrServiceRoleKeyRequired is returned by admin operations when the
	// client was built without a service role key. Enforced locally,
	// before any network call.
	ErrServiceRoleKeyRequired = errors.New("authsdk: service role key required for admin operations")

	// ErrGeneralError is the catch-all for unclassified non-success
	// statuses from the service.
	ErrGeneralError = errors.New("authsdk: general auth service error")
)

// classifyStatus maps a response status code to the error taxonomy.
// Success statuses (2xx) map to nil. It is invoked by every operation
// before the response body is inspected, so a non-success status always
// short-circuits JSON decoding.
func classifyStatus(status int) error {
	if status >= 200 && status < 300 {
		return nil
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrNotAuthorized
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return ErrInvalidParameters
	case http.StatusNotAcceptable:
		return ErrNotFound
	default:
		return ErrGeneralError
	}
}

// ServiceErrorResponse is the error body shape the auth service returns.
// Different endpoints populate different fields, so all are optional. It is
// decoded for diagnostics only; status classification never depends on it.
type ServiceErrorResponse struct {
	// Code is a numeric error code from the service
	Code *int `json:"code,omitempty"`

	// Error is the primary error message
	Error string `json:"error,omitempty"`

	// ErrorDescription is a longer description of the error
	ErrorDescription string `json:"error_description,omitempty"`

	// Msg is an alternative message field used by some endpoints
	Msg string `json:"msg,omitempty"`
}

// Message returns the most specific message present, or "" if none.
func (e ServiceErrorResponse) Message() string {
	switch {
	case e.Error != "":
		return e.Error
	case e.Msg != "":
		return e.Msg
	default:
		return e.ErrorDescription
	}
}
