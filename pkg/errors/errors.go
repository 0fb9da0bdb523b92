// Package errors provides structured error types for the chirp client.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Caller input rejected before any network call
//   - NETWORK_ERROR, TIMEOUT: The request could not be completed
//   - DECODE_ERROR: The response body was not valid JSON
//   - API_ERROR, UNAUTHORIZED, ...: The remote service answered with status >= 400
//   - CONFIGURATION_ERROR: A required capability is missing at startup
//
// Remote failures are reported as [*APIError], which carries the HTTP status
// and the message extracted from the response payload. Its [APIError.Code]
// distinguishes 401 responses so callers can tell invalid credentials apart
// from other failures without string matching:
//
//	_, err := client.VerifyCredentials(ctx)
//	if errors.IsUnauthorized(err) {
//	    // credentials rejected
//	}
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown timeline selector: %s", sel)
//	if errors.IsValidation(err) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "POST %s", url)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidSelector Code = "INVALID_SELECTOR"
	ErrCodeInvalidTTL      Code = "INVALID_TTL"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Transport errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Response errors
	ErrCodeDecode      Code = "DECODE_ERROR"
	ErrCodeAPI         Code = "API_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Authentication errors
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeForbidden    Code = "FORBIDDEN"

	// Startup errors
	ErrCodeConfiguration Code = "CONFIGURATION_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// APIError is returned when the remote service answers with HTTP status >= 400.
type APIError struct {
	StatusCode int    // HTTP status code
	APICode    int    // First error code from the payload, 0 if absent
	Message    string // First error message from the payload, or a generic fallback
	Body       []byte // Raw response body
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code(), e.Message)
}

// Code returns the error code for this error type.
func (e *APIError) Code() Code {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	default:
		return ErrCodeAPI
	}
}

// Is reports whether err has the given error code.
// It reports the code of the outermost *Error or *APIError in the chain.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the chain holds neither an *Error nor an *APIError.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case *APIError:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// IsValidation reports whether err was raised for invalid caller input.
func IsValidation(err error) bool {
	code := GetCode(err)
	return strings.HasPrefix(string(code), "INVALID_") || code == ErrCodeFileNotFound
}

// IsTransport reports whether err is a network, TLS or timeout failure.
func IsTransport(err error) bool {
	code := GetCode(err)
	return code == ErrCodeNetwork || code == ErrCodeTimeout
}

// IsUnauthorized reports whether err is a 401 response from the remote service.
func IsUnauthorized(err error) bool {
	return Is(err, ErrCodeUnauthorized)
}

// AsAPIError returns the *APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var e *APIError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// UserMessage returns a user-friendly message for the error.
// For *Error and *APIError types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil && (e.Code == ErrCodeNetwork || e.Code == ErrCodeTimeout) {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
