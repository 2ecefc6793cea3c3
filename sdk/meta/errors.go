package meta

import "fmt"

// ErrUnauthorized represents a request that the backend rejected with HTTP
// 401. By the time a caller sees this error, the local session has already
// been torn down.
type ErrUnauthorized struct {
	// Reason is the server-supplied explanation, if any.
	Reason string `json:"reason,omitempty"`
}

func (e *ErrUnauthorized) Error() string {
	return "Unauthorized"
}

// ErrRequestFailed represents any non-success outcome other than a 401,
// whether signaled by the HTTP status or by the business code of the
// response envelope.
type ErrRequestFailed struct {
	// StatusCode is the HTTP status or, for envelope failures, the business
	// code reported by the backend.
	StatusCode int `json:"statusCode"`
	// Message is the server-supplied message, or a generic one when the
	// server supplied none.
	Message string `json:"message"`
}

func (e *ErrRequestFailed) Error() string {
	return e.Message
}

// ErrNetwork represents a request for which no response at all could be
// obtained.
type ErrNetwork struct {
	cause error
}

// NewErrNetwork returns an *ErrNetwork wrapping the underlying transport
// error.
func NewErrNetwork(cause error) *ErrNetwork {
	return &ErrNetwork{cause: cause}
}

func (e *ErrNetwork) Error() string {
	if e.cause == nil {
		return "network error"
	}
	return fmt.Sprintf("network error: %s", e.cause)
}

// Unwrap returns the underlying transport error.
func (e *ErrNetwork) Unwrap() error {
	return e.cause
}
