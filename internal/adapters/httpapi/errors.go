package httpapi

import (
	"fmt"
)

// HTTPError is a non-2xx answer from the backend. Message is the server's
// "message" field when it sent one, otherwise "HTTP <code>: <status text>".
type HTTPError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NetworkError means no HTTP answer arrived at all.
type NetworkError struct {
	Method string
	Path   string
	Cause  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// SchemaError means a 2xx body could not be turned into the expected shape.
type SchemaError struct {
	Resource string
	Cause    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected %s response: %v", e.Resource, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
