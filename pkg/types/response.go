// Package types holds the wire shapes shared between the HTTP layer and its
// clients.
package types

// SuccessEnvelope wraps every successful gateway response.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body. Message is safe to show to shoppers;
// Details carries field-level validation output when present.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every failed gateway response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
