package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

// Option configures a Router during creation.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler replaces the handler that answers failed requests:
// unmatched paths, rejected methods, render errors and recovered panics.
// A nil handler keeps the default.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware installs router-level middleware ahead of anything added
// later with Use.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithContextFactory builds the per-request context. Required when C is not
// *Context; embed *Context (see NewContext) to keep the default behavior.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request, Match) C) Option[C] {
	return func(m *mux[C]) {
		m.newContext = f
	}
}

// WithLogger sets the logger used for recovered panics. Nil is ignored.
func WithLogger[C handler.Context](log *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if log != nil {
			m.logger = log
		}
	}
}
