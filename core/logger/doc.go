// Package logger provides structured logging utilities built on Go's standard
// slog package: a small factory with environment presets and attribute helpers
// for the fields the router and middleware log.
//
//	log := logger.New(
//		logger.WithProduction("relay"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("request completed",
//		logger.Method(r.Method),
//		logger.Route(ctx.Pattern()),
//		logger.StatusCode(200),
//		logger.Duration(time.Since(start)),
//	)
//
// Helpers return an empty slog.Attr for missing values (nil error, empty ID),
// which slog omits from output.
package logger
