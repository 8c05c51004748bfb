package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// writtenReporter is implemented by the router's response writer.
type writtenReporter interface {
	Written() bool
}

// convertToHTTPError converts any error to an HTTPError. Messages of
// non-HTTPError failures only surface for 4xx statuses.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base := httpErrorFor(status)
	if base.Status < http.StatusInternalServerError {
		return base.WithMessage(err.Error())
	}
	return base
}

func alreadyWritten(ctx handler.Context) bool {
	wr, ok := ctx.ResponseWriter().(writtenReporter)
	return ok && wr.Written()
}

// ErrorHandler renders errors as plain text. Use it with router.WithErrorHandler.
func ErrorHandler[C handler.Context](ctx C, err error) {
	if alreadyWritten(ctx) {
		return
	}
	httpErr := convertToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as JSON:
//
//	{"code":"not_found","message":"not found"}
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	if alreadyWritten(ctx) {
		return
	}
	httpErr := convertToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
