// Package server runs an http.Handler with production timeouts, a bounded
// worker pool and graceful shutdown.
//
// # Basic Usage
//
//	srv := server.New(":8080",
//		server.WithLogger(log),
//		server.WithShutdownTimeout(10*time.Second),
//		server.WithMaxWorkers(256),
//	)
//
// Run fits errgroup-based lifecycles: it serves until ctx is cancelled and
// then shuts down gracefully.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	eg, ctx := errgroup.WithContext(ctx)
//	eg.Go(srv.Run(ctx, router))
//	if err := eg.Wait(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// # Configuration
//
// Config carries env and yaml tags for core/config:
//
//	SERVER_ADDR              binding address (default ":8080")
//	SERVER_READ_TIMEOUT      default 15s
//	SERVER_WRITE_TIMEOUT     default 15s
//	SERVER_IDLE_TIMEOUT      default 60s
//	SERVER_SHUTDOWN_TIMEOUT  default 30s
//	SERVER_MAX_HEADER_BYTES  default 1 MiB
//	SERVER_WORKERS           concurrent handlers, 0 = unbounded
//
// # Workers
//
// With a worker bound, each request acquires a slot from a weighted semaphore
// (golang.org/x/sync/semaphore) before the handler runs. Waiting ends with 503
// when the request context is cancelled or times out. LimitWorkers exposes the
// same wrapper for use without a Server.
package server
