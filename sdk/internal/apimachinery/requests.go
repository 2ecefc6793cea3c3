package apimachinery

// OutboundRequest represents a request to the xwallet backend.
type OutboundRequest struct {
	// Method is the HTTP method, e.g. GET or POST.
	Method string
	// Path is relative to the API address.
	Path        string
	QueryParams map[string]string
	Headers     map[string]string
	// ReqBodyObj is marshaled to JSON unless it is already a []byte.
	ReqBodyObj interface{}
	// SuccessCode is the expected HTTP status. When zero, any 2xx status is
	// accepted.
	SuccessCode int
	// RespObj, if non-nil, receives the unmarshaled response body (or, when
	// Envelope is set, the envelope's data field).
	RespObj interface{}
	// Envelope indicates that the response body is wrapped in a meta.Result
	// whose business code must be checked.
	Envelope bool
}
