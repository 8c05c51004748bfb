package router

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/relay/core/handler"
)

// Route is a handle to one node of the routing tree. It is returned by
// Register and Handle and configures what happens when a request resolves
// to that node. Registering the same path twice returns the same Route, so a
// second SetMethod replaces the first handler: the last registration wins.
//
// Routes are configured during startup only. Once the router has served its
// first request every configuration method panics with ErrRouterSealed.
type Route[C handler.Context] struct {
	mux  *mux[C]
	node *node[C]

	handler     handler.HandlerFunc[C]
	methods     []string
	middlewares []handler.Middleware[C]
	override    []handler.Middleware[C]
	overridden  bool

	pattern string

	// capture names by position; restKey names the AnyPath remainder
	keys    []string
	restKey string
	rest    bool

	// effective middleware list, computed when the router is sealed
	chain []handler.Middleware[C]
}

func newRoute[C handler.Context](m *mux[C], n *node[C]) *Route[C] {
	segments := n.path()
	rt := &Route[C]{
		mux:     m,
		node:    n,
		pattern: patternString(segments),
	}

	seen := make(map[string]bool)
	for _, seg := range segments {
		if !seg.captures() {
			continue
		}
		if seg.name != "" {
			if seen[seg.name] {
				panic(fmt.Errorf("%w: '%s' has duplicate key '%s'", ErrDuplicateParam, rt.pattern, seg.name))
			}
			seen[seg.name] = true
		}
		if seg.kind == segAnyPath {
			rt.rest = true
			rt.restKey = seg.name
			continue
		}
		rt.keys = append(rt.keys, seg.name)
	}

	return rt
}

// Register creates (or returns) the route found by following segments from
// this route. It is how subtrees are built:
//
//	api := r.Register(router.Lit("api"))
//	api.Use(auth)
//	api.Register(router.Lit("users")).SetMethod(listUsers)
func (rt *Route[C]) Register(segments ...Segment) *Route[C] {
	rt.mux.mustBeOpen()
	return rt.mux.routeAt(rt.node.insert(segments))
}

// Handle registers pattern relative to this route, binds h and restricts the
// route to methods (all methods when none are given).
func (rt *Route[C]) Handle(pattern string, h handler.HandlerFunc[C], methods ...string) *Route[C] {
	segments, err := ParsePattern(pattern)
	if err != nil {
		panic(err)
	}
	return rt.Register(segments...).SetMethod(h).AllowMethods(methods...)
}

// SetMethod binds the handler that terminates the chain for this route.
func (rt *Route[C]) SetMethod(h handler.HandlerFunc[C]) *Route[C] {
	rt.mux.mustBeOpen()
	if h == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilHandler, rt.pattern))
	}
	rt.handler = h
	return rt
}

// AllowMethods replaces the set of accepted HTTP methods.
// An empty set accepts every method.
func (rt *Route[C]) AllowMethods(methods ...string) *Route[C] {
	rt.mux.mustBeOpen()
	set := make([]string, 0, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(strings.TrimSpace(method))
		if method == "" {
			panic(fmt.Errorf("%w: empty method on '%s'", ErrInvalidMethod, rt.pattern))
		}
		if !slices.Contains(set, method) {
			set = append(set, method)
		}
	}
	slices.Sort(set)
	rt.methods = set
	return rt
}

// Use appends middleware scoped to this route and every route registered
// below it. Scoped middleware runs after the router-level middleware.
func (rt *Route[C]) Use(middlewares ...handler.Middleware[C]) *Route[C] {
	rt.mux.mustBeOpen()
	for _, mw := range middlewares {
		if mw == nil {
			panic(fmt.Errorf("%w on '%s'", ErrNilMiddleware, rt.pattern))
		}
	}
	rt.middlewares = append(rt.middlewares, middlewares...)
	return rt
}

// Override replaces the whole middleware chain for this route only:
// router-level and ancestor middleware are skipped and middlewares run
// instead. Calling Override with no arguments leaves only the handler.
func (rt *Route[C]) Override(middlewares ...handler.Middleware[C]) *Route[C] {
	rt.mux.mustBeOpen()
	for _, mw := range middlewares {
		if mw == nil {
			panic(fmt.Errorf("%w on '%s'", ErrNilMiddleware, rt.pattern))
		}
	}
	rt.override = append([]handler.Middleware[C]{}, middlewares...)
	rt.overridden = true
	return rt
}

// Pattern returns the route pattern, e.g. "/test/{:[0-9]+}".
func (rt *Route[C]) Pattern() string {
	return rt.pattern
}

// Methods returns the accepted methods in sorted order; nil means all.
func (rt *Route[C]) Methods() []string {
	if len(rt.methods) == 0 {
		return nil
	}
	return slices.Clone(rt.methods)
}

// Allows reports whether the route accepts method.
func (rt *Route[C]) Allows(method string) bool {
	if len(rt.methods) == 0 {
		return true
	}
	_, found := slices.BinarySearch(rt.methods, method)
	return found
}

// Handler returns the bound handler, or nil if none was set.
func (rt *Route[C]) Handler() handler.HandlerFunc[C] {
	return rt.handler
}

// effectiveChain assembles router-level middleware, then middleware of every
// ancestor route from the root down, then the route's own middleware.
func (rt *Route[C]) effectiveChain(global []handler.Middleware[C]) []handler.Middleware[C] {
	if rt.overridden {
		return rt.override
	}

	var scoped [][]handler.Middleware[C]
	for n := rt.node; n != nil; n = n.parent {
		if n.route != nil && len(n.route.middlewares) > 0 {
			scoped = append(scoped, n.route.middlewares)
		}
	}

	mws := slices.Clone(global)
	for i := len(scoped) - 1; i >= 0; i-- {
		mws = append(mws, scoped[i]...)
	}
	return mws
}

// match builds the resolution result handed to the context factory.
func (rt *Route[C]) match(captures []string) Match {
	m := Match{
		Pattern:  rt.pattern,
		Captures: captures,
	}

	for i, key := range rt.keys {
		if key == "" || i >= len(captures) {
			continue
		}
		if m.Params == nil {
			m.Params = make(map[string]string, len(rt.keys)+1)
		}
		m.Params[key] = captures[i]
	}

	if rt.rest && rt.restKey != "" && len(captures) > len(rt.keys) {
		if m.Params == nil {
			m.Params = make(map[string]string, 1)
		}
		m.Params[rt.restKey] = strings.Join(captures[len(rt.keys):], "/")
	}

	return m
}

func (rt *Route[C]) allowHeader() string {
	return strings.Join(rt.methods, ", ")
}
