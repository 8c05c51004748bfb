package locals_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/locals"
)

func TestTake(t *testing.T) {
	t.Parallel()

	t.Run("returns_value_once", func(t *testing.T) {
		t.Parallel()

		s := locals.New()
		locals.Set(s, "k", 42)

		v, err := locals.Take[int](s, "k")
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		_, err = locals.Take[int](s, "k")
		assert.ErrorIs(t, err, locals.ErrAbsent)
	})

	t.Run("absent_key", func(t *testing.T) {
		t.Parallel()

		s := locals.New()
		v, err := locals.Take[string](s, "missing")
		assert.ErrorIs(t, err, locals.ErrAbsent)
		assert.Empty(t, v)
	})

	t.Run("type_mismatch_keeps_value", func(t *testing.T) {
		t.Parallel()

		s := locals.New()
		locals.Set(s, "k", "text")

		_, err := locals.Take[int](s, "k")
		require.ErrorIs(t, err, locals.ErrTypeMismatch)
		assert.False(t, errors.Is(err, locals.ErrAbsent))
		assert.True(t, s.Has("k"))

		v, err := locals.Take[string](s, "k")
		require.NoError(t, err)
		assert.Equal(t, "text", v)
	})

	t.Run("set_after_take_refills", func(t *testing.T) {
		t.Parallel()

		s := locals.New()
		locals.Set(s, "k", 1)
		_, _ = locals.Take[int](s, "k")
		locals.Set(s, "k", 2)

		v, err := locals.Take[int](s, "k")
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("interface_types", func(t *testing.T) {
		t.Parallel()

		s := locals.New()
		locals.Set[error](s, "err", errors.New("boom"))

		err, takeErr := locals.Take[error](s, "err")
		require.NoError(t, takeErr)
		assert.EqualError(t, err, "boom")
	})
}

func TestPeek(t *testing.T) {
	t.Parallel()

	s := locals.New()
	now := time.Now()
	locals.Set(s, "started", now)

	v, err := locals.Peek[time.Time](s, "started")
	require.NoError(t, err)
	assert.Equal(t, now, v)
	assert.Equal(t, 1, s.Len())
}

func TestParam(t *testing.T) {
	t.Parallel()

	t.Run("one_shot", func(t *testing.T) {
		t.Parallel()

		var s locals.Store
		assert.False(t, s.HasParam())

		locals.SetParam(&s, []string{"a", "b"})
		assert.True(t, s.HasParam())

		v, err := locals.TakeParam[[]string](&s)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, v)

		_, err = locals.TakeParam[[]string](&s)
		assert.ErrorIs(t, err, locals.ErrAbsent)
	})

	t.Run("type_mismatch", func(t *testing.T) {
		t.Parallel()

		var s locals.Store
		locals.SetParam(&s, 3.14)

		_, err := locals.TakeParam[int](&s)
		assert.ErrorIs(t, err, locals.ErrTypeMismatch)
		assert.True(t, s.HasParam())
	})
}

func TestNilInterfaceValues(t *testing.T) {
	t.Parallel()

	t.Run("keyed", func(t *testing.T) {
		t.Parallel()

		s := locals.New()
		locals.Set[error](s, "err", nil)

		v, err := locals.Peek[error](s, "err")
		require.NoError(t, err)
		assert.Nil(t, v)

		v, err = locals.Take[error](s, "err")
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.False(t, s.Has("err"))
	})

	t.Run("param", func(t *testing.T) {
		t.Parallel()

		s := locals.New()
		locals.SetParam[any](s, nil)

		v, err := locals.TakeParam[any](s)
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.False(t, s.HasParam())
	})

	t.Run("concrete_type_still_mismatches", func(t *testing.T) {
		t.Parallel()

		s := locals.New()
		locals.Set[error](s, "err", nil)

		_, err := locals.Take[int](s, "err")
		assert.ErrorIs(t, err, locals.ErrTypeMismatch)
		assert.True(t, s.Has("err"))
	})
}

func TestStore_Reset(t *testing.T) {
	t.Parallel()

	s := locals.New()
	locals.Set(s, "a", 1)
	locals.Set(s, "b", 2)
	locals.SetParam(s, "p")
	s.Delete("a")
	assert.Equal(t, 1, s.Len())

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.HasParam())
}
