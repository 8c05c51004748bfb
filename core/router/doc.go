// Package router dispatches HTTP requests through a segment-based routing tree
// and an ordered middleware chain that ends in the route handler.
//
// # Registering routes
//
// Routes are built from segments at startup:
//
//	r := router.New[*router.Context]()
//
//	r.Register().SetMethod(home)                                  // "/"
//	r.Register(router.Lit("random"), router.Lit("split")).SetMethod(random)
//
//	test := r.Register(router.Lit("test"))                         // subtree
//	test.Register(router.Lit("hello")).SetMethod(hello)
//	test.Register(router.Regex("[0-9]+")).SetMethod(number)        // /test/42
//	r.Register(router.Lit("files"), router.AnyPath()).SetMethod(files)
//
// or from string patterns, which also restrict methods:
//
//	r.Handle("/users/{id:[0-9]+}", getUser, http.MethodGet)
//	r.Handle("/static/*path", static)
//
// Registering the same path again returns the same *Route; the last handler
// set on it wins.
//
// # Resolution
//
// The request path is split on "/" (empty segments are ignored). At each
// level the literal child is tried first, then regex children in registration
// order, then the wildcard child. When a branch fails deeper in the tree the
// next candidate at that level is tried. Regex and Any segments capture the
// segment they match; AnyPath captures each remaining segment separately, so
// "/files/x/y" against "/files/*" yields captures ["x" "y"].
//
// No match answers 404 (ErrNotFound). A match whose route does not allow the
// request method answers 405 (ErrMethodNotAllowed) with an Allow header.
//
// # Middleware
//
// The effective chain of a route is the router-level middleware in append
// order, then middleware attached with Use on each ancestor route from the
// root down, then the route's own middleware, then the handler. Override
// replaces all of it for a single route.
//
//	r.Use(requestID, logging)   // requestID runs first on the way in, last on the way out
//
// Each middleware receives the continuation and may call it once, or return
// its own response without calling it. A second call panics with
// ErrContinuationReused, which the router answers with 500.
//
// # Request context and locals
//
// The default *Context exposes captures, named params, the matched pattern,
// a response slot and a locals.Store for typed one-shot handoff between
// layers. Custom contexts embed *Context and are created by the factory given
// to WithContextFactory.
//
// # Failures
//
// Panics in middleware, handlers or response rendering are recovered, logged
// with the stack and passed to the error handler as a PanicError, unless the
// response has already been written. A router starts read-only on its first
// request; later registration panics with ErrRouterSealed.
package router
