package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// Option adjusts how the Server is assembled. Options validate eagerly and
// panic on values that can never be right, so misconfiguration surfaces at
// startup rather than under load.
type Option func(*settings)

// WithAddr sets the listen address, e.g. ":8080" or "127.0.0.1:9090".
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: WithAddr called with empty address")
	}
	return func(s *settings) { s.addr = addr }
}

// WithReadTimeout bounds reading an entire request, body included.
func WithReadTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithReadTimeout requires a positive duration")
	}
	return func(s *settings) { s.readTimeout = d }
}

// WithReadHeaderTimeout bounds reading the request headers alone. This is
// the knob that shields the listener from slowloris-style clients without
// limiting large uploads.
func WithReadHeaderTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithReadHeaderTimeout requires a positive duration")
	}
	return func(s *settings) { s.readHeaderTimeout = d }
}

// WithWriteTimeout bounds writing a response. Leave it unset for handlers
// that stream indefinitely, such as event feeds.
func WithWriteTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithWriteTimeout requires a positive duration")
	}
	return func(s *settings) { s.writeTimeout = d }
}

// WithIdleTimeout bounds how long a keep-alive connection may sit idle.
func WithIdleTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithIdleTimeout requires a positive duration")
	}
	return func(s *settings) { s.idleTimeout = d }
}

// WithShutdownTimeout bounds how long Shutdown waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithShutdownTimeout requires a positive duration")
	}
	return func(s *settings) { s.shutdownTimeout = d }
}

// WithServer serves through the provided http.Server instead of a fresh one.
// Fields already set on it take precedence over option values; its Handler
// is always replaced by the one passed to Run.
func WithServer(srv *http.Server) Option {
	if srv == nil {
		panic("httpserver: WithServer called with nil server")
	}
	return func(s *settings) { s.base = srv }
}

// WithLogger routes lifecycle messages through the given logger. A nil
// logger silences them.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithStartHook registers fn to run once the server is armed, just before
// it begins accepting connections. Hooks run in registration order.
func WithStartHook(fn func(*slog.Logger)) Option {
	if fn == nil {
		panic("httpserver: WithStartHook called with nil hook")
	}
	return func(s *settings) { s.onStart = append(s.onStart, fn) }
}

// WithStopHook registers fn to run after the listener has drained.
func WithStopHook(fn func(*slog.Logger)) Option {
	if fn == nil {
		panic("httpserver: WithStopHook called with nil hook")
	}
	return func(s *settings) { s.onStop = append(s.onStop, fn) }
}
