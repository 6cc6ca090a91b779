package types

import "fmt"

// AppError is the error type carried through handlers to the global
// error handler, which renders it as the standard error envelope.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// BadRequest builds a validation error (400).
func BadRequest(message string) *AppError {
	return &AppError{Code: 400, Message: message, Type: "validation"}
}

// Unauthorized builds an authentication error (401).
func Unauthorized(message string) *AppError {
	return &AppError{Code: 401, Message: message, Type: "authentication"}
}

// Forbidden builds an ownership/authorization error (403).
func Forbidden(message string) *AppError {
	return &AppError{Code: 403, Message: message, Type: "authorization"}
}

// NotFound builds a missing-resource error (404).
func NotFound(message string) *AppError {
	return &AppError{Code: 404, Message: message, Type: "not_found"}
}

// PolicyViolation builds a rejected-operation error (400). Distinct type
// from validation: the request was well formed but the operation is not
// permitted, e.g. cancelling inside the 24 hour window.
func PolicyViolation(message string) *AppError {
	return &AppError{Code: 400, Message: message, Type: "policy"}
}

// Unavailable builds an upstream-unavailable error (503).
func Unavailable(message string) *AppError {
	return &AppError{Code: 503, Message: message, Type: "upstream"}
}

// Internal builds a generic server error (500).
func Internal(message string) *AppError {
	return &AppError{Code: 500, Message: message, Type: "internal"}
}
