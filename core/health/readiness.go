package health

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/logger"
	"github.com/dmitrymomot/relay/core/response"
)

// DefaultTimeout bounds a readiness probe.
const DefaultTimeout = 5 * time.Second

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

// Readiness returns a handler answering "READY" when every check succeeds
// within DefaultTimeout.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return ReadinessWithTimeout[C](log, DefaultTimeout, checks...)
}

// ReadinessWithTimeout is Readiness with a custom deadline. Checks run
// concurrently; the first failure cancels the rest.
func ReadinessWithTimeout[C handler.Context](log *slog.Logger, timeout time.Duration, checks ...Check) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Nop()
	}

	return func(ctx C) handler.Response {
		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		g, gctx := errgroup.WithContext(probeCtx)
		for _, check := range checks {
			g.Go(func() error {
				return check(gctx)
			})
		}

		if err := g.Wait(); err != nil {
			log.ErrorContext(ctx, "readiness check failed",
				logger.Component("health"),
				logger.Error(err),
			)
			return response.Error(response.ErrServiceUnavailable)
		}

		return response.String("READY")
	}
}
