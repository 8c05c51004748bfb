package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
	"github.com/dmitrymomot/relay/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.RequestID[*router.Context]())

	var captured string
	r.Handle("/test", func(ctx *router.Context) handler.Response {
		id, found := middleware.GetRequestID(ctx)
		assert.True(t, found)
		captured = id
		return response.String("ok")
	})

	w := get(r, "/test")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
	_, err := uuid.Parse(captured)
	require.NoError(t, err)
}

func TestRequestIDWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("custom_generator_and_header", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
			Generator:  func() string { return "custom-123" },
			HeaderName: "X-Trace-ID",
		}))
		r.Handle("/test", ok)

		w := get(r, "/test")

		assert.Equal(t, "custom-123", w.Header().Get("X-Trace-ID"))
		assert.Empty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("use_existing", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{UseExisting: true}))
		r.Handle("/test", ok)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "from-client")
		assert.Equal(t, "from-client", do(r, req).Header().Get("X-Request-ID"))

		assert.NotEmpty(t, get(r, "/test").Header().Get("X-Request-ID"))
	})

	t.Run("skip", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
			Skip: func(ctx handler.Context) bool {
				return strings.HasPrefix(ctx.Request().URL.Path, "/health")
			},
		}))
		r.Handle("/health", func(ctx *router.Context) handler.Response {
			_, found := middleware.GetRequestID(ctx)
			assert.False(t, found)
			return response.String("ok")
		})
		r.Handle("/api", ok)

		assert.Empty(t, get(r, "/health").Header().Get("X-Request-ID"))
		assert.NotEmpty(t, get(r, "/api").Header().Get("X-Request-ID"))
	})

	t.Run("header_on_short_circuit", func(t *testing.T) {
		t.Parallel()

		deny := func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
			return func(ctx *router.Context) handler.Response {
				return response.Status(http.StatusForbidden)
			}
		}

		r := router.New[*router.Context]()
		r.Use(middleware.RequestID[*router.Context](), deny)
		r.Handle("/x", ok)

		w := get(r, "/x")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDSlotResponse(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.RequestID[*router.Context]())
	r.Handle("/slot", slotted)

	w := get(r, "/slot")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "from slot", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
