package errors

import "fmt"

// HTTPError is a domain error carrying the HTTP status it should map to.
type HTTPError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// NewHTTPError returns an HTTPError with the given status code and message.
func NewHTTPError(statusCode int, message string) HTTPError {
	return HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewHTTPErrorf returns an HTTPError with a formatted message.
func NewHTTPErrorf(statusCode int, format string, args ...any) HTTPError {
	return HTTPError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf(format, args...),
	}
}
