package handler

import "net/http"

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are handled by the framework's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a type-safe HTTP request handler with custom context support.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles errors during request processing.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting functionality.
// The argument is the continuation: the rest of the chain up to and
// including the handler. It must be called at most once per request.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// ResponseSlot is implemented by contexts that hold a response set aside
// with SetResponse. router.Context and contexts embedding it qualify.
type ResponseSlot interface {
	Response() Response
}

// ResponseOrSlot returns resp, or the response held in ctx's slot when resp
// is nil. Middleware that post-processes responses uses it so slot answers
// get the same treatment as returned ones.
func ResponseOrSlot(ctx Context, resp Response) Response {
	if resp != nil {
		return resp
	}
	if slot, ok := ctx.(ResponseSlot); ok {
		return slot.Response()
	}
	return nil
}
