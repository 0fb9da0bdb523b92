package errors

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxBodyInMessage caps how much of a raw body ends up in a fallback message.
const maxBodyInMessage = 512

// errorPayload is the error envelope returned by the API.
type errorPayload struct {
	Errors []struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"errors"`
	Error string `json:"error"`
}

// NewAPIError builds an APIError for a response with the given status and body.
//
// The first entry of the payload's "errors" array supplies the message and
// API code. Some endpoints answer with a single "error" string instead, which
// is used when present. Any other body, including invalid JSON, degrades to
// "HTTP status N: <body>".
func NewAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: body}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Errors) > 0 && payload.Errors[0].Message != "" {
			e.Message = payload.Errors[0].Message
			e.APICode = payload.Errors[0].Code
			return e
		}
		if payload.Error != "" {
			e.Message = payload.Error
			return e
		}
	}

	raw := strings.TrimSpace(string(body))
	if len(raw) > maxBodyInMessage {
		cut := maxBodyInMessage
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut] + "..."
	}
	if raw == "" {
		e.Message = fmt.Sprintf("HTTP status %d", status)
	} else {
		e.Message = fmt.Sprintf("HTTP status %d: %s", status, raw)
	}
	return e
}
