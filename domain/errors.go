package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// GenericNetworkError is the fallback message when a failed call carries no
// usable message of its own. The trailing period matches the string users of
// the original client have seen for years; keep it.
const GenericNetworkError = "Unexpected network error."

// Token errors
var (
	ErrInvalidToken = errors.New("invalid pending registration token")
)

// Session errors
var (
	ErrNoSession      = errors.New("no session available")
	ErrSessionExpired = errors.New("session has expired")
)

// Payload errors
var (
	ErrEmptyPayload = errors.New("response payload is empty")
)

// APIError is any network- or server-originated failure, normalized to a
// short title plus a human-readable message suitable for transient display.
type APIError struct {
	Title   string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError builds an APIError from the first non-empty candidate message,
// mirroring the error?.message || error?.data?.message || fallback chain of
// the API contract.
func NewAPIError(candidates ...string) *APIError {
	msg := GenericNetworkError
	for _, c := range candidates {
		if c != "" {
			msg = c
			break
		}
	}
	return &APIError{Title: "Error occurred", Message: msg}
}

// ValidationError maps field paths to stable user-facing messages. It never
// reaches the network layer; submission short-circuits on it.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, p := range paths {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", p, e.Fields[p])
	}
	return b.String()
}

// FieldError returns the message recorded for a field path, if any.
func (e *ValidationError) FieldError(path string) (string, bool) {
	msg, ok := e.Fields[path]
	return msg, ok
}
