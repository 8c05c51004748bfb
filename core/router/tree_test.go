package router_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
)

func text(s string) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		return response.String(s)
	}
}

func TestResolve_Literal(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	ab := r.Register(router.Lit("a"), router.Lit("b")).SetMethod(text("ab"))

	rt, captures, ok := r.Resolve("/a/b")
	require.True(t, ok)
	assert.Same(t, ab, rt)
	assert.Empty(t, captures)

	t.Run("empty_segments_ignored", func(t *testing.T) {
		for _, p := range []string{"a/b", "/a/b/", "//a//b"} {
			rt, _, ok := r.Resolve(p)
			require.True(t, ok, p)
			assert.Same(t, ab, rt, p)
		}
	})

	t.Run("intermediate_node_without_handler", func(t *testing.T) {
		_, _, ok := r.Resolve("/a")
		assert.False(t, ok)
	})

	t.Run("unknown_path", func(t *testing.T) {
		_, _, ok := r.Resolve("/a/c")
		assert.False(t, ok)
	})
}

func TestResolve_Root(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	root := r.Register().SetMethod(text("home"))

	rt, captures, ok := r.Resolve("/")
	require.True(t, ok)
	assert.Same(t, root, rt)
	assert.Empty(t, captures)
	assert.Equal(t, "/", rt.Pattern())
}

func TestResolve_LastRegistrationWins(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	first := r.Register(router.Lit("dup")).SetMethod(text("first"))
	second := r.Handle("/dup", text("second"))
	assert.Same(t, first, second)

	req := httptest.NewRequest(http.MethodGet, "/dup", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "second", w.Body.String())
}

func TestResolve_Regex(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	n := r.Register(router.Lit("n"), router.Regex("[0-9]+")).SetMethod(text("number"))

	rt, captures, ok := r.Resolve("/n/42")
	require.True(t, ok)
	assert.Same(t, n, rt)
	assert.Equal(t, []string{"42"}, captures)

	t.Run("anchored_to_whole_segment", func(t *testing.T) {
		_, _, ok := r.Resolve("/n/42abc")
		assert.False(t, ok)
	})

	t.Run("alternation_anchored_on_both_ends", func(t *testing.T) {
		r := router.New[*router.Context]()
		alt := r.Register(router.Lit("n"), router.Regex("[0-9]+|new")).SetMethod(text("alt"))
		wild := r.Register(router.Lit("n"), router.Any()).SetMethod(text("any"))

		for _, path := range []string{"/n/42", "/n/new"} {
			rt, captures, ok := r.Resolve(path)
			require.True(t, ok, path)
			assert.Same(t, alt, rt, path)
			assert.Len(t, captures, 1)
		}
		for _, path := range []string{"/n/42abc", "/n/xyznew", "/n/new42"} {
			rt, _, ok := r.Resolve(path)
			require.True(t, ok, path)
			assert.Same(t, wild, rt, path)
		}
	})

	t.Run("user_anchors_allowed", func(t *testing.T) {
		r := router.New[*router.Context]()
		r.Register(router.Regex("^v[0-9]$")).SetMethod(text("v"))

		_, _, ok := r.Resolve("/v1")
		assert.True(t, ok)
		_, _, ok = r.Resolve("/v12")
		assert.False(t, ok)
	})

	t.Run("capture_position", func(t *testing.T) {
		r := router.New[*router.Context]()
		r.Register(router.Regex("[a-z]+"), router.Lit("items"), router.Regex("[0-9]+")).SetMethod(text("x"))

		_, captures, ok := r.Resolve("/shop/items/7")
		require.True(t, ok)
		assert.Equal(t, []string{"shop", "7"}, captures)
	})

	t.Run("registration_order", func(t *testing.T) {
		r := router.New[*router.Context]()
		digits := r.Register(router.Regex("[0-9]+")).SetMethod(text("digits"))
		r.Register(router.Regex("[0-9a-f]+")).SetMethod(text("hex"))

		rt, _, ok := r.Resolve("/123")
		require.True(t, ok)
		assert.Same(t, digits, rt)

		rt, _, ok = r.Resolve("/12ab")
		require.True(t, ok)
		assert.Equal(t, "/{:[0-9a-f]+}", rt.Pattern())
	})
}

func TestResolve_Priority(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	lit := r.Register(router.Lit("test"), router.Lit("async_test2")).SetMethod(text("lit"))
	rex := r.Register(router.Lit("test"), router.Regex("async_test[0-9]")).SetMethod(text("rex"))
	wild := r.Register(router.Lit("test"), router.Any()).SetMethod(text("any"))

	cases := []struct {
		path string
		want *router.Route[*router.Context]
	}{
		{"/test/async_test2", lit},
		{"/test/async_test3", rex},
		{"/test/other", wild},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rt, _, ok := r.Resolve(tc.path)
			require.True(t, ok)
			assert.Same(t, tc.want, rt)
		})
	}
}

func TestResolve_Backtracking(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Register(router.Lit("a"), router.Lit("b")).SetMethod(text("ab"))
	deep := r.Register(router.Regex("[a-z]"), router.Lit("c")).SetMethod(text("xc"))

	// the literal "a" branch has no "c" child, so the regex branch serves
	rt, captures, ok := r.Resolve("/a/c")
	require.True(t, ok)
	assert.Same(t, deep, rt)
	assert.Equal(t, []string{"a"}, captures)
}

func TestResolve_Any(t *testing.T) {
	t.Parallel()

	t.Run("single_segment", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Register(router.Lit("u"), router.Any()).SetMethod(text("user"))

		_, captures, ok := r.Resolve("/u/alice")
		require.True(t, ok)
		assert.Equal(t, []string{"alice"}, captures)

		_, _, ok = r.Resolve("/u/alice/posts")
		assert.False(t, ok)
	})

	t.Run("any_path_captures_each_segment", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		files := r.Register(router.Lit("files"), router.AnyPath()).SetMethod(text("files"))

		rt, captures, ok := r.Resolve("/files/x/y")
		require.True(t, ok)
		assert.Same(t, files, rt)
		assert.Equal(t, []string{"x", "y"}, captures)

		_, captures, ok = r.Resolve("/files/x")
		require.True(t, ok)
		assert.Equal(t, []string{"x"}, captures)
	})

	t.Run("any_path_needs_a_segment", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Register(router.Lit("files"), router.AnyPath()).SetMethod(text("files"))

		_, _, ok := r.Resolve("/files")
		assert.False(t, ok)
	})

	t.Run("specific_siblings_first", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		readme := r.Register(router.Lit("files"), router.Lit("README")).SetMethod(text("readme"))
		files := r.Register(router.Lit("files"), router.AnyPath()).SetMethod(text("files"))

		rt, _, ok := r.Resolve("/files/README")
		require.True(t, ok)
		assert.Same(t, readme, rt)

		rt, captures, ok := r.Resolve("/files/README/more")
		require.True(t, ok)
		assert.Same(t, files, rt)
		assert.Equal(t, []string{"README", "more"}, captures)
	})

	t.Run("conflicting_wildcards_panic", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Register(router.Lit("x"), router.Any())

		assert.PanicsWithError(t,
			fmt.Sprintf("%s: '{}' and '*' under '/x'", router.ErrWildcardConflict),
			func() { r.Register(router.Lit("x"), router.AnyPath()) },
		)
	})

	t.Run("any_path_must_be_last", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		files := r.Register(router.Lit("files"), router.AnyPath())

		assert.Panics(t, func() { files.Register(router.Lit("more")) })
		assert.Panics(t, func() { r.Register(router.AnyPath(), router.Lit("more")) })
	})
}

func TestResolve_NamedParams(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()

	var got struct {
		id, rest string
		captures []string
	}
	r.Handle("/users/{id:[0-9]+}/files/*rest", func(ctx *router.Context) handler.Response {
		got.id = ctx.Param("id")
		got.rest = ctx.Param("rest")
		got.captures = ctx.Captures()
		return response.String(ctx.Pattern())
	})

	req := httptest.NewRequest(http.MethodGet, "/users/7/files/a/b.txt", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/users/{id:[0-9]+}/files/*rest", w.Body.String())
	assert.Equal(t, "7", got.id)
	assert.Equal(t, "a/b.txt", got.rest)
	assert.Equal(t, []string{"7", "a", "b.txt"}, got.captures)

	t.Run("duplicate_names_panic", func(t *testing.T) {
		r := router.New[*router.Context]()
		assert.Panics(t, func() { r.Handle("/{id}/x/{id:[0-9]+}", text("x")) })
	})

	t.Run("same_regex_different_name_panics", func(t *testing.T) {
		r := router.New[*router.Context]()
		r.Handle("/{id:[0-9]+}", text("x"))
		assert.Panics(t, func() { r.Handle("/{num:[0-9]+}", text("y")) })
	})
}

func TestResolve_EscapedSegments(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	var captured string
	r.Register(router.Lit("f"), router.Any()).SetMethod(func(ctx *router.Context) handler.Response {
		captured = ctx.Captures()[0]
		return response.String("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/f/a%2Fb", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a/b", captured)
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Register(router.Lit("b")).SetMethod(text("b")).AllowMethods("post", "GET")
	r.Register(router.Lit("a")).SetMethod(text("a"))
	r.Register(router.Lit("a"), router.Regex("[0-9]+")).SetMethod(text("n"))
	r.Register(router.Lit("stub"))

	assert.Equal(t, []router.RouteInfo{
		{Pattern: "/a"},
		{Pattern: "/a/{:[0-9]+}"},
		{Pattern: "/b", Methods: []string{"GET", "POST"}},
	}, r.Routes())
}
