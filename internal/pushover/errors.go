package pushover

import (
	"fmt"
	"strings"
)

// ValidationError reports caller input that violates a locally enforced
// precondition. It is raised before any transport call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportErrorKind classifies how a provider round trip failed.
type TransportErrorKind string

const (
	TransportTimeout   TransportErrorKind = "timeout"
	TransportNetwork   TransportErrorKind = "network"
	TransportMalformed TransportErrorKind = "malformed_response"
)

// TransportError wraps a failure to complete the provider round trip. The
// underlying cause is preserved for server-side logging; callers only get a
// generic message.
type TransportError struct {
	Kind TransportErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError reports a well-formed provider response indicating rejection.
// A 200 HTTP response can still carry an API-level failure (status != 1), so
// the provider status field is authoritative.
type ProviderError struct {
	Status     int // provider status field, 1 means accepted
	HTTPStatus int
	Errors     []string
	Body       string
}

func (e *ProviderError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("provider rejected request (status %d): %s", e.Status, strings.Join(e.Errors, "; "))
	}
	return fmt.Sprintf("provider rejected request (status %d, http %d)", e.Status, e.HTTPStatus)
}
