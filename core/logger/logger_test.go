package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json_with_attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithJSONFormatter(),
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "relay")),
		)
		log.Info("hello", logger.Route("/a/b"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "relay", rec["service"])
		assert.Equal(t, "/a/b", rec["route"])
	})

	t.Run("level_filters", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())

		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("production_preset", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithProduction("relay"), logger.WithOutput(&buf))
		log.Debug("dropped")
		log.Info("kept")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "production", rec["env"])
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	t.Run("empty_for_missing_values", func(t *testing.T) {
		t.Parallel()

		assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
		assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
		assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
		assert.True(t, logger.Route("").Equal(slog.Attr{}))
	})

	t.Run("errors_keep_position", func(t *testing.T) {
		t.Parallel()

		err1, err2 := errors.New("first"), errors.New("second")
		attr := logger.Errors(err1, nil, err2)
		require.Equal(t, slog.KindGroup, attr.Value.Kind())
		g := attr.Value.Group()
		require.Len(t, g, 2)
		assert.Equal(t, "0", g[0].Key)
		assert.Equal(t, "2", g[1].Key)
	})

	t.Run("values", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "GET", logger.Method("GET").Value.String())
		assert.Equal(t, int64(404), logger.StatusCode(404).Value.Int64())
		assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
		assert.Equal(t, "router", logger.Component("router").Value.String())
	})
}
