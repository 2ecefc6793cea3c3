package meta

import "encoding/json"

// BusinessCodeOK is the value of Result.Code that the xwallet backend uses to
// indicate success. The backend frequently answers with HTTP 200 even when an
// operation failed, so this code, and not just the HTTP status, has to be
// checked.
const BusinessCodeOK = 200

// Result is the uniform envelope the xwallet backend wraps around every
// response body.
type Result struct {
	// Code is a business status code. BusinessCodeOK indicates success.
	Code int `json:"code"`
	// Message is a human-readable description of the outcome.
	Message string `json:"message,omitempty"`
	// Data is the operation-specific payload. It is left undecoded so callers
	// can unmarshal it into whatever type the operation returns.
	Data json.RawMessage `json:"data,omitempty"`
}

// OK returns true when the envelope reports success.
func (r Result) OK() bool {
	return r.Code == BusinessCodeOK
}

// ListOptions represents pagination options for API calls that return pages
// of results.
type ListOptions struct {
	// Page is the 1-based page number to retrieve.
	Page int
	// Size is the maximum number of items per page.
	Size int
}

// ListMeta is metadata for paged collections of resources.
type ListMeta struct {
	// Total is the number of items matching the query across all pages.
	Total int64 `json:"total"`
	// Page is the page number these results belong to.
	Page int `json:"page"`
	// Size is the page size that was applied.
	Size int `json:"size"`
	// TotalPages is the number of pages available.
	TotalPages int `json:"totalPages,omitempty"`
}
