package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
)

func ok(ctx *router.Context) handler.Response {
	return response.String("ok")
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	return do(r, httptest.NewRequest(http.MethodGet, target, nil))
}

func readAll(ctx *router.Context) handler.Response {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return response.Error(err)
	}
	return response.String(string(body))
}

// slotted answers through the context's response slot instead of returning.
func slotted(ctx *router.Context) handler.Response {
	ctx.SetResponse(response.StringWithStatus("from slot", http.StatusCreated))
	return nil
}
