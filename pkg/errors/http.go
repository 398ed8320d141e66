package errors

import "net/http"

// HTTPError is an error that carries the HTTP status it should be reported with.
type HTTPError struct {
	StatusCode int
	Message    string
}

// NewHTTPError returns a new HTTPError. A zero statusCode defaults to 400.
func NewHTTPError(statusCode int, message string) *HTTPError {
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// NewBadRequestHTTPError returns a 400 error with the given message.
func NewBadRequestHTTPError(message string) *HTTPError {
	if message == "" {
		message = MessageBadRequest
	}
	return NewHTTPError(http.StatusBadRequest, message)
}

// NewUnauthorizedHTTPError returns a 401 error.
func NewUnauthorizedHTTPError() *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, MessageUnauthorized)
}

// NewForbiddenHTTPError returns a 403 error.
func NewForbiddenHTTPError() *HTTPError {
	return NewHTTPError(http.StatusForbidden, MessageForbidden)
}

// NewInternalHTTPError returns a 500 error with the given message.
func NewInternalHTTPError(message string) *HTTPError {
	if message == "" {
		message = MessageInternal
	}
	return NewHTTPError(http.StatusInternalServerError, message)
}

func (e *HTTPError) Error() string {
	return e.Message
}
