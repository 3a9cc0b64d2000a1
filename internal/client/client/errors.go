package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response")
)

// NetworkError is a transport failure: no HTTP response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrUnavailable, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Op     string
	Status int
	// Payload is the decoded JSON object body, nil when the body was not one.
	Payload map[string]any
	Body    []byte
}

func (e *StatusError) Error() string {
	if msg := payloadMessage(e.Payload); msg != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, msg)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// MalformedResponseError reports a 2xx body that does not have the expected shape.
type MalformedResponseError struct {
	Op     string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, ErrMalformedResponse, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrMalformedResponse, e.Reason)
}

func (e *MalformedResponseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedResponse}
	}
	return []error{ErrMalformedResponse, e.Err}
}

// AuthError is a failed login. Status is 0 for transport failures; otherwise
// it is the HTTP status and Payload the backend's error body.
type AuthError struct {
	Status  int
	Payload map[string]any
	Err     error
}

func (e *AuthError) Error() string {
	if msg := payloadMessage(e.Payload); msg != "" {
		return "login failed: " + msg
	}
	return fmt.Sprintf("login failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Message is the backend's "error" field, or "" when absent.
func (e *AuthError) Message() string { return payloadMessage(e.Payload) }

// SignupError is a failed registration. Payload is the error body when it is
// a JSON object; Body always holds the raw bytes, whatever their shape.
type SignupError struct {
	Status  int
	Payload map[string]any
	Body    json.RawMessage
	Err     error
}

func (e *SignupError) Error() string {
	if msg := e.Message(); msg != "" {
		return "signup failed: " + msg
	}
	return fmt.Sprintf("signup failed: %v", e.Err)
}

func (e *SignupError) Unwrap() error { return e.Err }

// Message is the backend's "error" or "message" field. A bare JSON string
// body is returned as is.
func (e *SignupError) Message() string {
	if msg := payloadMessage(e.Payload); msg != "" {
		return msg
	}
	var s string
	if err := json.Unmarshal(e.Body, &s); err == nil {
		return s
	}
	return ""
}

// Details decodes Body into a generic JSON value, nil when Body is empty or
// not JSON.
func (e *SignupError) Details() any {
	if len(e.Body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(e.Body, &v); err != nil {
		return nil
	}
	return v
}

func payloadMessage(p map[string]any) string {
	if p == nil {
		return ""
	}
	if s, ok := p["error"].(string); ok {
		return s
	}
	if s, ok := p["message"].(string); ok {
		return s
	}
	return ""
}

// decodePayload returns body as a JSON object, or nil when it is not one.
func decodePayload(body []byte) map[string]any {
	var p map[string]any
	if err := json.Unmarshal(body, &p); err != nil {
		return nil
	}
	return p
}
