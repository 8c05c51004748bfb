// Command relay serves a small demo site on top of the relay router.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/relay/core/config"
	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/logger"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
	"github.com/dmitrymomot/relay/core/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", os.Getenv("RELAY_CONFIG"), "path to a YAML config file")
	flag.Parse()

	var cfg AppConfig
	if err := config.LoadFile(*configPath, &cfg); err != nil {
		return err
	}

	log := newLogger(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a, err := newApp(cfg, log, reg)
	if err != nil {
		return err
	}
	r := a.router()

	// Routes can also be attached from outside the route table.
	r.Register(router.Lit("flexible"), router.Lit("url"), router.Lit("may_be_changed")).
		SetMethod(flexibleAccess)

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.InfoContext(ctx, "starting",
		logger.Component("main"),
		logger.Count("routes", len(r.Routes())),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, r))
	return g.Wait()
}

func flexibleAccess(ctx *router.Context) handler.Response {
	return response.String("Flexible")
}
