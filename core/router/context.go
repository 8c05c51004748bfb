package router

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/locals"
)

// Match is the result of route resolution handed to the context factory.
type Match struct {
	// Pattern of the resolved route; empty when nothing matched
	Pattern string
	// Captures in traversal order
	Captures []string
	// Params holds named captures; nil when the route names none
	Params map[string]string
}

// Context is the default context implementation that delegates to the request's context.
// Custom contexts can embed *Context and be built with WithContextFactory.
type Context struct {
	w        http.ResponseWriter
	r        *http.Request
	match    Match
	locals   locals.Store
	response handler.Response
}

// NewContext creates a Context for a request resolved to m.
func NewContext(w http.ResponseWriter, r *http.Request, m Match) *Context {
	return &Context{
		w:     w,
		r:     r,
		match: m,
	}
}

// Deadline returns the time when work done on behalf of this context should be canceled.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns a channel that's closed when work done on behalf of this context should be canceled.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns a non-nil error value after Done is closed.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns the value associated with this context for key, or nil if no value is associated with key.
func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// SetValue stores a value in the request's context.
// The value can be retrieved using the Value method.
func (c *Context) SetValue(key, val any) {
	ctx := context.WithValue(c.r.Context(), key, val)
	c.r = c.r.WithContext(ctx)
}

// Request returns the HTTP request associated with this context.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the HTTP response writer associated with this context.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Method returns the request method.
func (c *Context) Method() string {
	return c.r.Method
}

// Path returns the request path.
func (c *Context) Path() string {
	return c.r.URL.Path
}

// Param returns the value of the URL parameter for the given key.
func (c *Context) Param(key string) string {
	if c.match.Params == nil {
		return ""
	}
	return c.match.Params[key]
}

// Captures returns the captured path segments in traversal order.
func (c *Context) Captures() []string {
	return c.match.Captures
}

// Pattern returns the pattern of the resolved route.
func (c *Context) Pattern() string {
	return c.match.Pattern
}

// Locals returns the request-scoped handoff storage.
func (c *Context) Locals() *locals.Store {
	return &c.locals
}

// SetResponse fills the response slot. The router renders it when the
// chain returns a nil response.
func (c *Context) SetResponse(resp handler.Response) {
	c.response = resp
}

// Response returns the response slot.
func (c *Context) Response() handler.Response {
	return c.response
}

