package main

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/health"
	"github.com/dmitrymomot/relay/core/logger"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
	"github.com/dmitrymomot/relay/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

type app struct {
	cfg     AppConfig
	log     *slog.Logger
	reg     *prometheus.Registry
	pages   *template.Template
	metrics http.Handler
}

func newApp(cfg AppConfig, log *slog.Logger, reg *prometheus.Registry) (*app, error) {
	pages, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &app{
		cfg:     cfg,
		log:     log,
		reg:     reg,
		pages:   pages,
		metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}, nil
}

// router builds the demo route table:
//
//	/                          home page
//	/random/split/something    literal chain
//	/random
//	/test/hello
//	/test/json_old
//	/test/json
//	/test/async_test           slow literal
//	/test/async_test2          slow, matched by an anchored regex
//	/test/{:[0-9]+}            any number
//	/test/form_url_coded       GET form, POST echo
//	/test/form                 GET form, POST multipart file listing
//	/test/temp                 template render
//	/test/ws                   websocket echo
//	/files/*                   echoes every remaining segment
//	/metrics                   Prometheus exposition
//	/health/live, /health/ready, /ping
func (a *app) router() router.Router[*router.Context] {
	r := router.New(
		router.WithErrorHandler(response.ErrorHandler[*router.Context]),
		router.WithLogger[*router.Context](a.log),
	)

	skipMetrics := func(ctx handler.Context) bool {
		p := ctx.Pattern()
		return p == "/metrics" || p == "/ping" || strings.HasPrefix(p, "/health/")
	}

	r.Use(
		middleware.RequestID[*router.Context](),
		middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
			Logger: a.log,
			Skip:   skipMetrics,
		}),
		middleware.MetricsWithConfig[*router.Context](middleware.MetricsConfig{
			Registerer: a.reg,
			Skip:       skipMetrics,
		}),
		middleware.BodyLimitWithSize[*router.Context](a.cfg.MaxBodySize),
		middleware.Timing[*router.Context](),
	)

	r.Register().SetMethod(func(ctx *router.Context) handler.Response {
		return response.HTML("<h1>Home</h1>")
	})
	r.Register(router.Lit("random"), router.Lit("split"), router.Lit("something")).SetMethod(randomPage)
	r.Register(router.Lit("random")).SetMethod(randomPage)

	test := r.Register(router.Lit("test"))
	test.Register(router.Lit("hello")).SetMethod(func(ctx *router.Context) handler.Response {
		return response.String("Hello")
	})
	test.Register(router.Lit("json_old")).SetMethod(func(ctx *router.Context) handler.Response {
		return response.JSON(map[string]any{
			"number": 2,
			"string": "Hello",
			"array":  []int{1, 2, 3},
		})
	})
	test.Register(router.Lit("json")).SetMethod(func(ctx *router.Context) handler.Response {
		return response.JSON(map[string]any{
			"number": 3,
			"string": "Hello",
			"array":  []int{1, 2, 3},
			"object": map[string]int{"a": 1, "b": 2, "c": 3},
		})
	})
	test.Register(router.Lit("async_test")).SetMethod(a.asyncPage)
	test.Register(router.Regex("async_test2")).SetMethod(a.asyncPage)
	test.Register(router.Regex("[0-9]+")).SetMethod(func(ctx *router.Context) handler.Response {
		return response.String("Number page")
	})
	test.Register(router.Lit("form_url_coded")).
		AllowMethods(http.MethodGet, http.MethodPost).
		SetMethod(a.urlEncodedForm)
	test.Register(router.Lit("form")).
		AllowMethods(http.MethodGet, http.MethodPost).
		SetMethod(a.multipartForm)
	test.Register(router.Lit("temp")).SetMethod(a.templatePage)
	test.Register(router.Lit("ws")).AllowMethods(http.MethodGet).SetMethod(a.echoSocket)

	r.Handle("/files/*", func(ctx *router.Context) handler.Response {
		return response.String(strings.Join(ctx.Captures(), "\n"))
	}, http.MethodGet, http.MethodHead)

	r.Handle("/metrics", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, req *http.Request) error {
			a.metrics.ServeHTTP(w, req)
			return nil
		}
	}, http.MethodGet)

	r.Handle("/health/live", health.Liveness[*router.Context], http.MethodGet, http.MethodHead)
	r.Handle("/health/ready", health.Readiness[*router.Context](a.log, a.gatherMetrics), http.MethodGet, http.MethodHead)
	r.Handle("/ping", health.NoContent[*router.Context], http.MethodGet, http.MethodHead)

	return r
}

// gatherMetrics fails when a registered collector is broken.
func (a *app) gatherMetrics(ctx context.Context) error {
	_, err := a.reg.Gather()
	return err
}

func randomPage(ctx *router.Context) handler.Response {
	return response.String("A random page")
}

// asyncPage does three steps of slow work, giving up if the client leaves.
func (a *app) asyncPage(ctx *router.Context) handler.Response {
	middleware.SetTimingLabel(ctx, "async")

	timer := time.NewTimer(a.cfg.AsyncStep)
	defer timer.Stop()

	for step := 1; step <= 3; step++ {
		select {
		case <-ctx.Done():
			return response.Error(ctx.Err())
		case <-timer.C:
			a.log.DebugContext(ctx, "async step done",
				logger.Component("demo"),
				logger.Route(ctx.Pattern()),
				logger.Count("step", step),
			)
			timer.Reset(a.cfg.AsyncStep)
		}
	}
	return response.String("Async Test Page")
}

type formPage struct {
	Title     string
	Action    string
	Multipart bool
}

func (a *app) urlEncodedForm(ctx *router.Context) handler.Response {
	req := ctx.Request()
	if req.Method != http.MethodPost {
		return response.Template(a.pages, "form.html", formPage{Title: "URL-encoded form", Action: req.URL.Path})
	}

	if err := req.ParseForm(); err != nil {
		return response.Error(response.ErrBadRequest.WithMessage("error parsing form").WithError(err))
	}

	keys := make([]string, 0, len(req.PostForm))
	for key := range req.PostForm {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, strings.Join(req.PostForm[key], ",")))
	}
	return response.String("Form data: " + strings.Join(pairs, "&"))
}

func (a *app) multipartForm(ctx *router.Context) handler.Response {
	req := ctx.Request()
	if req.Method != http.MethodPost {
		return response.Template(a.pages, "form.html", formPage{Title: "File upload", Action: req.URL.Path, Multipart: true})
	}

	if err := req.ParseMultipartForm(a.cfg.MaxBodySize); err != nil {
		return response.Error(response.ErrBadRequest.WithMessage("error parsing form").WithError(err))
	}
	defer func() { _ = req.MultipartForm.RemoveAll() }()

	files := req.MultipartForm.File["file"]
	if len(files) == 0 {
		return response.Error(response.ErrBadRequest.WithMessage("no file uploaded"))
	}

	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "%s (%s, %d bytes)\n", f.Filename, f.Header.Get("Content-Type"), f.Size)
	}
	return response.String(b.String())
}

type homePage struct {
	Title       string
	PageTitle   string
	ShowMessage bool
	Message     string
	Items       []int
}

func (a *app) templatePage(ctx *router.Context) handler.Response {
	return response.Template(a.pages, "home.html", homePage{
		Title:       "My Website - Home",
		PageTitle:   "Welcome to My Website",
		ShowMessage: true,
		Message:     "Hello, world!",
		Items:       []int{1, 2, 3, 4, 5},
	})
}
