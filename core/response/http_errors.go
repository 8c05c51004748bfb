package response

import (
	"net/http"
	"strings"
)

// HTTPError represents a structured error response that implements the error interface.
type HTTPError struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// NewHTTPError creates an error with the given message and a 500 status.
func NewHTTPError(message string) HTTPError {
	return ErrInternalServerError.WithMessage(message)
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
// This is the convention the router's error handling resolves statuses by.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy of the error with an error cause.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

// Predefined HTTP errors using http.StatusText for default messages.
var (
	// 4xx Client Errors
	ErrBadRequest            = statusError(http.StatusBadRequest)
	ErrUnauthorized          = statusError(http.StatusUnauthorized)
	ErrForbidden             = statusError(http.StatusForbidden)
	ErrNotFound              = statusError(http.StatusNotFound)
	ErrMethodNotAllowed      = statusError(http.StatusMethodNotAllowed)
	ErrRequestTimeout        = statusError(http.StatusRequestTimeout)
	ErrConflict              = statusError(http.StatusConflict)
	ErrRequestEntityTooLarge = statusError(http.StatusRequestEntityTooLarge)
	ErrUnsupportedMediaType  = statusError(http.StatusUnsupportedMediaType)
	ErrTeapot                = statusError(http.StatusTeapot)
	ErrUnprocessableEntity   = statusError(http.StatusUnprocessableEntity)
	ErrTooManyRequests       = statusError(http.StatusTooManyRequests)

	// 5xx Server Errors
	ErrInternalServerError = statusError(http.StatusInternalServerError)
	ErrNotImplemented      = statusError(http.StatusNotImplemented)
	ErrBadGateway          = statusError(http.StatusBadGateway)
	ErrServiceUnavailable  = statusError(http.StatusServiceUnavailable)
	ErrGatewayTimeout      = statusError(http.StatusGatewayTimeout)
)

// statusError derives code and message from the status text:
// 413 becomes {"request_entity_too_large", "Request Entity Too Large"}.
func statusError(status int) HTTPError {
	text := http.StatusText(status)
	code := strings.ToLower(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
	return HTTPError{Status: status, Code: code, Message: text}
}

// httpErrorFor returns the predefined error for status, or a derived one.
func httpErrorFor(status int) HTTPError {
	if http.StatusText(status) == "" || status < http.StatusBadRequest {
		return ErrInternalServerError
	}
	return statusError(status)
}
