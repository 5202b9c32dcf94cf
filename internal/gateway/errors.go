package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend, or the mock's rendition
// of one.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// RequestError is a transport-level failure: the request never produced a
// response.
type RequestError struct {
	Op    string
	URL   string
	Cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: request to %s failed: %v", e.Op, e.URL, e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// FieldError is a single shape violation at a JSON path.
type FieldError struct {
	Field   string
	Message string
}

// ErrUnexpectedShape is a 2xx response whose body is not the expected
// envelope.
type ErrUnexpectedShape struct {
	Op     string
	Errors []FieldError
	Cause  error
}

func (e *ErrUnexpectedShape) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: unexpected response shape", e.Op)
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, "; %s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

func (e *ErrUnexpectedShape) Unwrap() error {
	return e.Cause
}

func notFound(op, what, id string) error {
	return &APIError{Op: op, Status: http.StatusNotFound, Message: fmt.Sprintf("%s %s not found", what, id)}
}
