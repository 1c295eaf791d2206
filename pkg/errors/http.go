package errors

import "fmt"

// HTTPError is an error that carries the HTTP status the delivery layer should answer with.
type HTTPError struct {
	StatusCode int
	Message    string
}

// NewHTTPError creates a new HTTPError.
func NewHTTPError(code int, msg string) *HTTPError {
	return &HTTPError{StatusCode: code, Message: msg}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// String renders the status alongside the message, for logs.
func (e *HTTPError) String() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}
