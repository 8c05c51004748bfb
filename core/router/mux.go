package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/logger"
)

// mux is the private implementation of Router interface.
type mux[C handler.Context] struct {
	tree         *node[C]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, Match) C
	logger       *slog.Logger

	sealOnce sync.Once
	sealed   atomic.Bool
}

// newMux creates a new router instance.
func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		tree:         &node[C]{},
		errorHandler: defaultErrorHandler[C],
		logger:       logger.Nop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	for _, mw := range m.middlewares {
		if mw == nil {
			panic(ErrNilMiddleware)
		}
	}

	// If no context factory provided, require it for non-default contexts
	if m.newContext == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		m.newContext = func(w http.ResponseWriter, r *http.Request, match Match) C {
			return any(NewContext(w, r, match)).(C)
		}
	}

	return m
}

// ServeHTTP implements http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.seal()

	ww := newResponseWriter(w)

	// Use RawPath if available to preserve URL encoding
	path := r.URL.Path
	if r.URL.RawPath != "" {
		path = r.URL.RawPath
	}

	rt, captures, found := m.resolve(path)

	var match Match
	if found {
		match = rt.match(captures)
	}

	ctx := m.newContext(ww, r, match)

	// Recover from panics to prevent server crashes
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{
				value: p,
				stack: debug.Stack(),
			}

			m.logger.ErrorContext(r.Context(), "panic recovered",
				logger.Component("router"),
				logger.Error(panicErr),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Route(match.Pattern),
				slog.Bool("response_written", ww.Written()),
				slog.String("stack", string(panicErr.stack)),
			)

			// Response already on the wire: nothing more can be sent
			if !ww.Written() {
				m.errorHandler(ctx, panicErr)
			}
		}
	}()

	if !found {
		m.errorHandler(ctx, ErrNotFound)
		return
	}

	if !rt.Allows(r.Method) {
		// Set Allow header per RFC 7231 before responding with 405
		ww.Header().Set("Allow", rt.allowHeader())
		m.errorHandler(ctx, ErrMethodNotAllowed)
		return
	}

	fn := chain(rt.chain, rt.handler)

	response := handler.ResponseOrSlot(ctx, fn(ctx))
	if response == nil {
		m.fail(ctx, r, match, ErrNilResponse)
		return
	}

	// The client is gone; abandon the request instead of writing to it
	if err := r.Context().Err(); err != nil {
		m.logger.DebugContext(r.Context(), "request abandoned",
			logger.Component("router"),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Error(err),
		)
		return
	}

	if err := response(ww, r); err != nil {
		m.fail(ctx, r, match, err)
		return
	}
}

// fail logs server-side failures of a matched route, then hands err to the
// error handler. Client errors are left to the error handler alone.
func (m *mux[C]) fail(ctx C, r *http.Request, match Match, err error) {
	if StatusOf(err) >= http.StatusInternalServerError {
		m.logger.ErrorContext(r.Context(), "request failed",
			logger.Component("router"),
			logger.Error(err),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Route(match.Pattern),
		)
	}
	m.errorHandler(ctx, err)
}

// Register walks or extends the tree from the root.
func (m *mux[C]) Register(segments ...Segment) *Route[C] {
	m.mustBeOpen()
	return m.routeAt(m.tree.insert(segments))
}

// Handle registers a string pattern, binds h and restricts methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C], methods ...string) *Route[C] {
	segments, err := ParsePattern(pattern)
	if err != nil {
		panic(err)
	}
	return m.Register(segments...).SetMethod(h).AllowMethods(methods...)
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	m.mustBeOpen()
	for _, mw := range middlewares {
		if mw == nil {
			panic(ErrNilMiddleware)
		}
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// Resolve finds the route serving path.
func (m *mux[C]) Resolve(path string) (*Route[C], []string, bool) {
	return m.resolve(path)
}

// Routes returns all routes that have a handler, in resolution order.
func (m *mux[C]) Routes() []RouteInfo {
	var routes []RouteInfo
	m.tree.walk(func(n *node[C]) {
		if n.serves() {
			routes = append(routes, RouteInfo{
				Pattern: n.route.pattern,
				Methods: n.route.Methods(),
			})
		}
	})
	return routes
}

func (m *mux[C]) resolve(path string) (*Route[C], []string, bool) {
	n, captures := m.tree.find(splitPath(path), make([]string, 0, 4))
	if n == nil {
		return nil, nil, false
	}
	return n.route, captures, true
}

// routeAt returns the route attached to n, creating it on first use.
func (m *mux[C]) routeAt(n *node[C]) *Route[C] {
	if n.route == nil {
		n.route = newRoute(m, n)
	}
	return n.route
}

// seal freezes the configuration and precomputes every route's chain.
func (m *mux[C]) seal() {
	if m.sealed.Load() {
		return
	}
	m.sealOnce.Do(func() {
		m.tree.walk(func(n *node[C]) {
			if n.route != nil {
				n.route.chain = n.route.effectiveChain(m.middlewares)
			}
		})
		m.sealed.Store(true)
	})
}

func (m *mux[C]) mustBeOpen() {
	if m.sealed.Load() {
		panic(ErrRouterSealed)
	}
}
