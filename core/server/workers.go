package server

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/relay/core/logger"
)

// LimitWorkers lets at most n requests run next at the same time. A request
// that cannot get a worker before its context ends is answered with 503.
// n <= 0 returns next unchanged.
func LimitWorkers(n int, next http.Handler, log *slog.Logger) http.Handler {
	if n <= 0 {
		return next
	}
	if log == nil {
		log = logger.Nop()
	}

	sem := semaphore.NewWeighted(int64(n))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sem.Acquire(r.Context(), 1); err != nil {
			log.WarnContext(r.Context(), "no worker available",
				logger.Component("server"),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Error(err),
			)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		defer sem.Release(1)

		next.ServeHTTP(w, r)
	})
}
