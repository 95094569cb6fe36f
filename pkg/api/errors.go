package api

import (
	"errors"
	"fmt"
)

// Kind classifies request failures into the four categories callers
// branch on. Every error returned by Client wraps exactly one Kind.
type Kind string

const (
	// Unauthorized means the credential was missing or rejected. The
	// caller should treat it as session expiry and log out.
	Unauthorized Kind = "unauthorized"
	// NotFound means the resource does not exist.
	NotFound Kind = "not_found"
	// Validation means the input was rejected, either by a local
	// pre-check or by the backend.
	Validation Kind = "validation"
	// Transport covers network failures, timeouts, and unexpected
	// server errors.
	Transport Kind = "transport"
)

// Error is the uniform failure shape for all backend operations.
type Error struct {
	Kind   Kind
	Status int    // HTTP status, 0 for network-level failures
	Detail string // backend-provided detail, if any
	Err    error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// fromStatus maps an HTTP status code to an error kind.
func fromStatus(status int, detail string) *Error {
	var kind Kind
	switch {
	case status == 401 || status == 403:
		kind = Unauthorized
	case status == 404:
		kind = NotFound
	case status == 400 || status == 422:
		kind = Validation
	default:
		kind = Transport
	}
	return &Error{Kind: kind, Status: status, Detail: detail}
}
