package mongo

import "errors"

var (
	// ErrConnect reports that MongoDB never became reachable within the
	// retry budget.
	ErrConnect = errors.New("mongo: failed to connect")

	// ErrHealthcheck reports a failed readiness ping.
	ErrHealthcheck = errors.New("mongo: healthcheck failed")
)
