package httpserver

import "errors"

var (
	// ErrStart wraps listener startup failures, including calling Run on a
	// server that is already running.
	ErrStart = errors.New("http server failed to start")

	// ErrShutdown wraps failures to drain the server within the shutdown
	// timeout.
	ErrShutdown = errors.New("http server failed to shut down cleanly")
)
