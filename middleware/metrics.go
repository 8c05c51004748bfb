package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/relay/core/handler"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Registerer receives the collectors (default: prometheus.DefaultRegisterer)
	Registerer prometheus.Registerer

	// Namespace prefixes metric names (default: "relay")
	Namespace string

	// Buckets for the duration histogram in seconds (default: prometheus.DefBuckets)
	Buckets []float64
}

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight *prometheus.GaugeVec
}

// Metrics creates a metrics middleware registered with the default registerer.
func Metrics[C handler.Context]() handler.Middleware[C] {
	return MetricsWithConfig[C](MetricsConfig{})
}

// MetricsWithConfig creates a metrics middleware with custom configuration.
//
// It records, labelled by the matched route pattern rather than the raw path:
//
//	<ns>_http_requests_total{method,route,status}
//	<ns>_http_request_duration_seconds{method,route}
//	<ns>_http_requests_in_flight{route}
//
// Collectors already registered under the same names are reused, so several
// routers may share one registry.
func MetricsWithConfig[C handler.Context](cfg MetricsConfig) handler.Middleware[C] {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "relay"
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = prometheus.DefBuckets
	}

	m := httpMetrics{
		requests: register(cfg.Registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests dispatched to a route, by status.",
		}, []string{"method", "route", "status"})),
		duration: register(cfg.Registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time from entering the chain to the end of rendering.",
			Buckets:   cfg.Buckets,
		}, []string{"method", "route"})),
		inFlight: register(cfg.Registerer, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently inside the chain.",
		}, []string{"route"})),
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			route := ctx.Pattern()
			method := ctx.Request().Method

			gauge := m.inFlight.WithLabelValues(route)
			gauge.Inc()
			defer gauge.Dec()

			resp := handler.ResponseOrSlot(ctx, next(ctx))
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				rec := newStatusRecorder(w)
				err := resp(rec, r)

				m.requests.WithLabelValues(method, route, strconv.Itoa(rec.finalStatus(err))).Inc()
				m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
				return err
			}
		}
	}
}

// register returns c, or the equal collector that is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
