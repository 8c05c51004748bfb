package router

import (
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

// Router is the main routing interface for handling HTTP requests.
// Routes and middleware are registered at startup; the first served request
// seals the router, after which it is read-only and safe to share.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	// Register walks or extends the routing tree from the root and returns
	// the route at the end of segments.
	Register(segments ...Segment) *Route[C]

	// Handle registers a string pattern (see ParsePattern), binds h and
	// restricts the route to methods; no methods means all methods.
	Handle(pattern string, h handler.HandlerFunc[C], methods ...string) *Route[C]

	// Use appends router-level middleware. Execution order is append order.
	Use(middlewares ...handler.Middleware[C])

	// Resolve finds the route serving path, ignoring the request method.
	Resolve(path string) (*Route[C], []string, bool)
}

// Routes provides route introspection capabilities for debugging and monitoring.
type Routes interface {
	Routes() []RouteInfo
}

// RouteInfo describes a single route with its pattern and accepted methods.
// Nil Methods means every method is accepted.
type RouteInfo struct {
	Pattern string
	Methods []string
}

// New creates a new router with the given options.
// The router supports generic context types for type-safe request handling.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
