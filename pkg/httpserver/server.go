package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type settings struct {
	addr              string
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	base              *http.Server
	logger            *slog.Logger
	onStart           []func(*slog.Logger)
	onStop            []func(*slog.Logger)
}

// Server runs an HTTP listener with graceful shutdown. A Server is armed by
// Run and stopped by canceling the context, receiving SIGINT/SIGTERM, or
// calling Shutdown; each instance serves at most once.
type Server struct {
	opts settings

	mu       sync.Mutex
	active   *http.Server
	stopOnce sync.Once
}

// New builds a Server from the given options. Unset values fall back to
// sensible defaults; the write timeout in particular stays at zero so that
// long-lived streaming responses are not cut off.
func New(opts ...Option) *Server {
	s := &Server{opts: settings{
		addr:              ":8080",
		readHeaderTimeout: 5 * time.Second,
		shutdownTimeout:   10 * time.Second,
	}}
	for _, opt := range opts {
		opt(&s.opts)
	}
	if s.opts.logger == nil {
		s.opts.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Run starts serving handler and blocks until the context is canceled, a
// termination signal arrives, or the listener fails. A nil handler serves
// 404 for everything. Startup failures, including calling Run twice, are
// reported wrapped in ErrStart; a graceful stop returns nil.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	srv, err := s.arm(handler)
	if err != nil {
		return err
	}

	ctx, unhook := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer unhook()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()

	for _, hook := range s.opts.onStart {
		hook(s.opts.logger)
	}
	s.opts.logger.InfoContext(ctx, "http server listening", slog.String("addr", srv.Addr))

	select {
	case err := <-serveErr:
		// Either the bind failed or Shutdown was called directly.
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrStart, err)
	case <-ctx.Done():
	}

	err = s.Shutdown(context.Background())
	<-serveErr
	return err
}

// arm resolves the final *http.Server exactly once. Fields already set on a
// server supplied via WithServer win over option values.
func (s *Server) arm(handler http.Handler) (*http.Server, error) {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, fmt.Errorf("%w: already running", ErrStart)
	}

	srv := s.opts.base
	if srv == nil {
		srv = &http.Server{}
	}
	if srv.Addr == "" {
		srv.Addr = s.opts.addr
	}
	if srv.ReadTimeout == 0 {
		srv.ReadTimeout = s.opts.readTimeout
	}
	if srv.ReadHeaderTimeout == 0 {
		srv.ReadHeaderTimeout = s.opts.readHeaderTimeout
	}
	if srv.WriteTimeout == 0 {
		srv.WriteTimeout = s.opts.writeTimeout
	}
	if srv.IdleTimeout == 0 {
		srv.IdleTimeout = s.opts.idleTimeout
	}
	srv.Handler = handler

	s.active = srv
	return srv, nil
}

// Shutdown drains in-flight requests and stops the listener, bounded by the
// configured shutdown timeout. It is safe to call repeatedly and concurrently
// with Run; only the first call does any work.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		s.mu.Lock()
		srv := s.active
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.opts.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)

		for _, hook := range s.opts.onStop {
			hook(s.opts.logger)
		}
		s.opts.logger.InfoContext(ctx, "http server stopped")
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: %w", ErrShutdown, err)
	}
	return nil
}
