package backend

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the backend. Detail carries the
// backend-supplied message (FastAPI "detail" field) when present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// UserMessage is the text shown in the portal's dismissible error banner:
// the backend's detail when it sent one, a generic fallback otherwise.
func (e *APIError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "The verification service returned an error. Please try again."
}

func newAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	// A non-JSON error body is fine; Detail just stays empty.
	_ = json.Unmarshal(body, &envelope)
	detail := envelope.Detail
	if detail == "" {
		detail = envelope.Message
	}
	return &APIError{StatusCode: status, Detail: detail}
}

// AsAPIError unwraps err to an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
