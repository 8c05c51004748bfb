// Package locals implements request-scoped storage used by middleware and
// handlers to pass typed values to each other.
//
// A Store holds string-keyed values and one anonymous "param" slot. Reads are
// destructive: Take and TakeParam remove the value they return, so every Set is
// consumed at most once. Reads are typed; asking for the wrong type yields
// ErrTypeMismatch and leaves the value in place, a missing value yields
// ErrAbsent.
//
//	locals.Set(ctx.Locals(), "started", time.Now())
//	resp := next(ctx)
//	started, err := locals.Take[time.Time](ctx.Locals(), "started")
//
// A Store is owned by one request at a time and is not safe for concurrent use.
package locals
