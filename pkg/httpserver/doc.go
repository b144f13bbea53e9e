// Package httpserver hosts the operations API: a thin lifecycle wrapper
// around net/http with graceful shutdown, signal handling and slog logging.
//
// A Server is built with New or NewFromConfig and started with Run, which
// blocks until the context is canceled, SIGINT/SIGTERM arrives, or the
// listener fails:
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithLogger(log),
//	)
//	if err := srv.Run(ctx, api.Router()); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Startup failures come back wrapped in ErrStart and shutdown failures in
// ErrShutdown; a graceful stop returns nil. Shutdown may also be called
// directly and is idempotent.
//
// Unlike a typical API server, the default configuration sets no write
// timeout. The event stream endpoint keeps a response open for the lifetime
// of each subscriber, and a write deadline would tear those connections
// down. Use WithReadHeaderTimeout to bound header reads instead; it is the
// effective guard against slow clients when streaming is in play.
//
// HealthCheckHandler provides the /healthz endpoint: a liveness probe when
// called with no checks, a readiness probe running each dependency check
// against the request context otherwise.
package httpserver
