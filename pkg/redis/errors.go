package redis

import "errors"

var (
	// ErrInvalidURL reports an unparseable connection URL.
	ErrInvalidURL = errors.New("redis: invalid connection URL")

	// ErrNotReady reports that Redis never answered a ping within the
	// connect timeout and retry budget.
	ErrNotReady = errors.New("redis: not ready")

	// ErrHealthcheck reports a failed readiness ping.
	ErrHealthcheck = errors.New("redis: healthcheck failed")
)
