package handler

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/relay/core/locals"
)

// Context defines the contract for request contexts in the framework.
// Use router.Context for the default implementation.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Param returns a named capture of the matched route, or "" if absent.
	Param(key string) string
	// Captures returns every captured path segment in traversal order.
	Captures() []string
	// Pattern returns the registration pattern of the matched route.
	Pattern() string
	// Locals returns the request-scoped handoff storage.
	Locals() *locals.Store
	SetValue(key, val any)
}
