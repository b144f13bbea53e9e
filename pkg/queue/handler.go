package queue

import (
	"context"
	"encoding/json"
	"errors"
)

type (
	// Handler processes jobs taken from a queue. The context carries the
	// job's execution deadline; handlers that respect cancellation stop
	// promptly when the job times out or the scheduler shuts down.
	Handler interface {
		Handle(ctx context.Context, job Job) error
	}

	// HandlerFunc adapts a function to the Handler interface.
	HandlerFunc func(ctx context.Context, job Job) error

	// JobHandlerFunc is the typed form used with NewHandler.
	JobHandlerFunc[T any] func(ctx context.Context, payload T) error
)

func (f HandlerFunc) Handle(ctx context.Context, job Job) error {
	return f(ctx, job)
}

// NewHandler wraps a typed function into a Handler that decodes the job's
// JSON payload into T before invoking it. Decode failures fail the job.
func NewHandler[T any](handler JobHandlerFunc[T]) Handler {
	return HandlerFunc(func(ctx context.Context, job Job) error {
		var payload T
		if len(job.Payload) > 0 {
			if err := json.Unmarshal(job.Payload, &payload); err != nil {
				return errors.Join(ErrPayloadDecode, err)
			}
		}
		return handler(ctx, payload)
	})
}
