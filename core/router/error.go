package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

// Dispatch errors carry the status the router answers with.
var (
	ErrNotFound           error = &dispatchError{http.StatusNotFound, "not found"}
	ErrMethodNotAllowed   error = &dispatchError{http.StatusMethodNotAllowed, "method not allowed"}
	ErrNilResponse        error = &dispatchError{http.StatusInternalServerError, "nil response"}
	ErrContinuationReused error = &dispatchError{http.StatusInternalServerError, "middleware continuation invoked more than once"}
)

var (
	// Registration errors
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrRouterSealed     = errors.New("router is serving requests and can no longer be configured")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrNilHandler       = errors.New("nil handler")
	ErrNilMiddleware    = errors.New("nil middleware")

	// Tree errors
	ErrInvalidSegment   = errors.New("invalid route path segment")
	ErrInvalidRegexp    = errors.New("invalid route path pattern regexp")
	ErrWildcardPosition = errors.New("wildcard path segment must be last")
	ErrWildcardConflict = errors.New("conflicting wildcard segments at the same level")
	ErrParamDelimiter   = errors.New("unbalanced param delimiters")
	ErrParamConflict    = errors.New("segment registered with a different capture name")
	ErrDuplicateParam   = errors.New("duplicate parameter name")
)

// statusCode is an unexported interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

type dispatchError struct {
	status int
	msg    string
}

func (e *dispatchError) Error() string   { return e.msg }
func (e *dispatchError) StatusCode() int { return e.status }

// StatusOf returns the HTTP status the default error handler uses for err.
func StatusOf(err error) int {
	var sc statusCode
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// defaultErrorHandler provides default error handling.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()

	// Prevent double-writing responses which causes HTTP protocol errors
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := StatusOf(err)

	// Client errors that choose their status also choose their message;
	// server errors must not leak internals.
	message := http.StatusText(status)
	var sc statusCode
	if status < http.StatusInternalServerError && errors.As(err, &sc) {
		message = err.Error()
	}

	http.Error(w, message, status)
}

// PanicError interface allows external error handlers to detect and handle panics.
// When a panic is recovered by the router, it's wrapped in an error that implements
// this interface, providing access to the original panic value and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

// panicError is the private implementation of PanicError interface.
type panicError struct {
	value any
	stack []byte
}

// Error implements the error interface.
func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Value returns the original panic value.
func (e *panicError) Value() any {
	return e.value
}

// Stack returns the stack trace.
func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
