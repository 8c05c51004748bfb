package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
	"github.com/dmitrymomot/relay/middleware"
)

func postBody(body string, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	newRouter := func(mw handler.Middleware[*router.Context]) router.Router[*router.Context] {
		r := router.New[*router.Context]()
		r.Use(mw)
		r.Handle("/upload", readAll, http.MethodPost)
		return r
	}

	t.Run("within_limit", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.BodyLimitWithSize[*router.Context](10))
		w := do(r, postBody("0123456789", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0123456789", w.Body.String())
	})

	t.Run("declared_length_rejected", func(t *testing.T) {
		t.Parallel()

		called := false
		r := router.New[*router.Context]()
		r.Use(middleware.BodyLimitWithSize[*router.Context](4))
		r.Handle("/upload", func(ctx *router.Context) handler.Response {
			called = true
			return response.String("ok")
		}, http.MethodPost)

		w := do(r, postBody("too long", ""))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "request body too large: 8 bytes, maximum allowed: 4 bytes")
		assert.False(t, called)
	})

	t.Run("unknown_length_cut_while_reading", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.BodyLimitWithSize[*router.Context](4))
		req := postBody("too long", "")
		req.ContentLength = -1

		w := do(r, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "maximum allowed: 4 bytes")
	})

	t.Run("content_type_limit", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
			MaxSize:          100,
			ContentTypeLimit: map[string]int64{"application/json": 2},
		}))

		assert.Equal(t, http.StatusRequestEntityTooLarge, do(r, postBody(`{"a":1}`, "application/json; charset=utf-8")).Code)
		assert.Equal(t, http.StatusOK, do(r, postBody(`{"a":1}`, "text/plain")).Code)
	})

	t.Run("custom_error_handler", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
			MaxSize: 1,
			ErrorHandler: func(ctx handler.Context, contentLength, maxSize int64) handler.Response {
				return response.JSONWithStatus(map[string]int64{"got": contentLength, "max": maxSize}, http.StatusRequestEntityTooLarge)
			},
		}))

		w := do(r, postBody("abc", ""))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.JSONEq(t, `{"got":3,"max":1}`, w.Body.String())
	})

	t.Run("skip", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
			MaxSize: 1,
			Skip:    func(ctx handler.Context) bool { return true },
		}))

		assert.Equal(t, http.StatusOK, do(r, postBody("abc", "")).Code)
	})
}

func TestBodyLimitJSONErrors(t *testing.T) {
	t.Parallel()

	r := router.New(router.WithErrorHandler(response.JSONErrorHandler[*router.Context]))
	r.Use(middleware.BodyLimitWithSize[*router.Context](2 * middleware.KB))
	r.Handle("/upload", readAll, http.MethodPost)

	w := do(r, postBody(strings.Repeat("x", 3000), ""))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{
		"code": "request_entity_too_large",
		"message": "request body too large: 2.93 KB, maximum allowed: 2.00 KB",
		"details": {"size": 3000, "limit": 2048}
	}`, w.Body.String())
}
