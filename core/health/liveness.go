package health

import (
	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
)

// Liveness reports that the process is serving. It checks nothing else.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent answers 204 with no body, for high-frequency pings.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}
