// Package response builds handler.Response values: small render functions
// that write status, headers and body once the middleware chain has settled
// on them.
//
//	func hello(ctx *router.Context) handler.Response {
//		return response.String("Hello, World!")
//	}
//
//	func user(ctx *router.Context) handler.Response {
//		u, err := users.Find(ctx, ctx.Param("id"))
//		if err != nil {
//			return response.Error(response.ErrNotFound.WithError(err))
//		}
//		return response.JSON(u)
//	}
//
// Errors returned by a response (or produced by Error) reach the router's
// error handler. HTTPError and any error with a StatusCode() int method pick
// the status; ErrorHandler and JSONErrorHandler render them as text or JSON.
//
// Decorators such as WithHeaders and WithCache wrap an existing response, which
// is also how middleware amends what an inner layer returned.
package response
