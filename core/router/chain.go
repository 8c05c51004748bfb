package router

import (
	"fmt"
	"sync/atomic"

	"github.com/dmitrymomot/relay/core/handler"
)

// chain builds a single handler from a middleware stack and endpoint.
// It is rebuilt for every request so each continuation can be guarded
// against a second invocation within that request.
func chain[C handler.Context](middlewares []handler.Middleware[C], endpoint handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	h := endpoint

	// Wrap in reverse order so the first middleware runs first
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](once(i, h))
	}

	return h
}

// once guards the continuation handed to the middleware at position layer.
func once[C handler.Context](layer int, next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	var called atomic.Bool
	return func(ctx C) handler.Response {
		if !called.CompareAndSwap(false, true) {
			panic(fmt.Errorf("%w: middleware #%d", ErrContinuationReused, layer))
		}
		return next(ctx)
	}
}
