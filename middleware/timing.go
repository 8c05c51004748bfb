package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/locals"
)

// Locals keys shared between Timing and the layers inside it.
const (
	timingStartKey = "middleware.timing.start"
	timingLabelKey = "middleware.timing.label"
)

// TimingConfig configures the Server-Timing middleware.
type TimingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// DefaultLabel names the metric when no inner layer set one (default: "app")
	DefaultLabel string
}

// Timing creates a Server-Timing middleware with default configuration.
func Timing[C handler.Context]() handler.Middleware[C] {
	return TimingWithConfig[C](TimingConfig{})
}

// TimingWithConfig creates a middleware that measures the time spent inside
// the chain and reports it in a Server-Timing header:
//
//	Server-Timing: db;dur=12.4
//
// On the way in it leaves the start time in the request locals, where an
// inner layer may take it with TimingStart. On the way out it takes the label
// an inner layer left with SetTimingLabel.
func TimingWithConfig[C handler.Context](cfg TimingConfig) handler.Middleware[C] {
	if cfg.DefaultLabel == "" {
		cfg.DefaultLabel = "app"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			locals.Set(ctx.Locals(), timingStartKey, start)

			resp := handler.ResponseOrSlot(ctx, next(ctx))
			elapsed := time.Since(start)

			// unclaimed start must not leak to anything rendered later
			ctx.Locals().Delete(timingStartKey)

			label, err := locals.Take[string](ctx.Locals(), timingLabelKey)
			if err != nil || label == "" {
				label = cfg.DefaultLabel
			}

			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Add("Server-Timing", fmt.Sprintf("%s;dur=%.1f", label, float64(elapsed.Microseconds())/1000))
				return resp(w, r)
			}
		}
	}
}

// TimingStart takes the start time left by Timing. It is one-shot: a second
// call reports false.
func TimingStart(ctx handler.Context) (time.Time, bool) {
	start, err := locals.Take[time.Time](ctx.Locals(), timingStartKey)
	return start, err == nil
}

// SetTimingLabel names the Server-Timing metric reported by Timing for this
// request.
func SetTimingLabel(ctx handler.Context, label string) {
	locals.Set(ctx.Locals(), timingLabelKey, label)
}
