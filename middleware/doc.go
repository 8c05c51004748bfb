// Package middleware provides handler.Middleware implementations for
// cross-cutting concerns: request IDs, request logging, body size limits,
// Prometheus metrics and Server-Timing.
//
// Every middleware is generic over the context type and comes as a default
// constructor plus a WithConfig variant:
//
//	r := router.New[*router.Context]()
//	r.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.LoggingWithLogger[*router.Context](log),
//		middleware.Metrics[*router.Context](),
//		middleware.BodyLimitWithSize[*router.Context](10*middleware.MB),
//		middleware.Timing[*router.Context](),
//	)
//
// Middleware registered first runs first on the way in and last on the way
// out. Each one either calls the continuation once or returns its own
// response; BodyLimit, for instance, answers oversized requests with 413
// without running the handler.
//
// # Passing data between layers
//
// RequestID stores its value in the request context (GetRequestID). Timing
// uses the per-request locals store instead: it leaves the start time for
// inner layers (TimingStart) and reads back a label they may set
// (SetTimingLabel) once the continuation returns.
//
// Logging and Metrics label requests with the matched route pattern
// (ctx.Pattern()), which keeps metric cardinality bounded.
package middleware
