// Package handler provides the types shared by the router, the middleware
// package and application code: the request context contract, handlers,
// middleware and error handlers.
//
// # Core Types
//
//	// Response function renders HTTP responses
//	type Response func(w http.ResponseWriter, r *http.Request) error
//
//	// Type-safe handler with custom context
//	type HandlerFunc[C Context] func(ctx C) Response
//
//	// Error handling function
//	type ErrorHandler[C Context] func(ctx C, err error)
//
//	// Middleware function for handler composition
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// # Middleware
//
// A middleware receives the continuation (next) and returns the wrapper body.
// The body may run code before calling next, inspect or replace the response
// next returns, or return its own response without calling next at all:
//
//	func Auth[C handler.Context]() handler.Middleware[C] {
//		return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//			return func(ctx C) handler.Response {
//				if ctx.Request().Header.Get("Authorization") == "" {
//					return response.Error(response.ErrUnauthorized)
//				}
//				return next(ctx)
//			}
//		}
//	}
//
// Calling next twice for the same request is a contract violation; the
// router detects it and answers with 500.
//
// # Request-scoped values
//
// Layers hand typed values to each other through ctx.Locals(), a one-shot
// store where reads remove the entry:
//
//	locals.Set(ctx.Locals(), "user", user)
//	// ... in an inner layer
//	user, err := locals.Take[*User](ctx.Locals(), "user")
package handler
