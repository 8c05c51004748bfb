package response

import (
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

// Error returns a response that hands err to the router's error handler
// instead of rendering anything itself.
//
//	if err != nil {
//		return response.Error(response.ErrNotFound.WithError(err))
//	}
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
