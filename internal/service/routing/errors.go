package routing

import "fmt"

// FailureKind classifies why an upstream call produced no result.
// Callers collapse every kind to the same client-visible failure; tests
// and logs can tell them apart.
type FailureKind string

const (
	// KindTransport covers timeouts and connection-level errors
	KindTransport FailureKind = "transport"
	// KindStatus covers non-success HTTP status codes
	KindStatus FailureKind = "status"
	// KindUpstream covers well-formed responses whose service code is not Ok
	KindUpstream FailureKind = "upstream"
	// KindDecode covers malformed or unexpected payloads
	KindDecode FailureKind = "decode"
)

// Error is the structured failure returned by the routing and geocoding
// clients in place of a silent null result.
type Error struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("routing: %s failure: %v", e.Kind, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("routing: %s failure: http %d", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("routing: %s failure", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

func statusError(code int) *Error {
	return &Error{Kind: KindStatus, StatusCode: code}
}

func upstreamError(err error) *Error {
	return &Error{Kind: KindUpstream, Err: err}
}

func decodeError(err error) *Error {
	return &Error{Kind: KindDecode, Err: err}
}
