package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error into the uniform taxonomy used across
// the service. Database-layer failures are normalized to KindConnectivity or
// KindQuery before they cross the package boundary; domain failures
// (credentials, forbidden, not found) pass through unchanged.
type Kind string

const (
	KindConnectivity       Kind = "DATABASE_CONNECTION_FAILED"
	KindQuery              Kind = "DATABASE_QUERY_FAILED"
	KindInvalidInput       Kind = "INVALID_INPUT"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindForbidden          Kind = "FORBIDDEN"
	KindNotFound           Kind = "NOT_FOUND"
)

// Error is the single error type exposed by this service's core packages.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates an error with the given kind and client-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a new kinded error. The cause is kept for logging
// via Unwrap but the message is what crosses the transport boundary.
func Wrap(cause error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// InvalidCredentials returns the uniform authentication failure. Unknown
// tenant, unknown identity and wrong secret all map here so the error kind
// never reveals which step failed.
func InvalidCredentials() *Error {
	return New(KindInvalidCredentials, MsgInvalidCredentials)
}

// Forbidden marks a known identity that is explicitly deactivated.
func Forbidden() *Error {
	return New(KindForbidden, MsgForbidden)
}

// KindOf extracts the kind from an error chain; ok is false for errors that
// did not originate in this taxonomy.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// HTTPStatus maps an error kind to the HTTP status the transport layer
// should answer with.
func HTTPStatus(err error) int {
	switch k, _ := KindOf(err); k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConnectivity, KindQuery:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
