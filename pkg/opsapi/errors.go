package opsapi

import "errors"

var (
	ErrSchedulerNil      = errors.New("scheduler cannot be nil")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrStreamUnsupported = errors.New("response writer does not support streaming")
)
