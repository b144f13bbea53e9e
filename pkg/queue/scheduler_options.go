package queue

import (
	"context"
	"log/slog"
	"time"
)

// Option configures a Scheduler.
type Option func(*schedulerOptions)

type schedulerOptions struct {
	logger            *slog.Logger
	sink              DeadLetterSink
	mirror            Mirror
	deadLetterHooks   []func(context.Context, DeadLetter)
	eventBufferSize   int
	recurringInterval time.Duration
}

// WithLogger sets the scheduler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *schedulerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDeadLetterSink sets where exhausted jobs are persisted. Defaults to
// an in-memory sink.
func WithDeadLetterSink(sink DeadLetterSink) Option {
	return func(o *schedulerOptions) {
		if sink != nil {
			o.sink = sink
		}
	}
}

// WithMirror mirrors pending jobs into an external system for visibility.
func WithMirror(m Mirror) Option {
	return func(o *schedulerOptions) {
		if m != nil {
			o.mirror = m
		}
	}
}

// WithDeadLetterHook registers a callback invoked after a job is
// dead-lettered, e.g. to page an operator. Hooks run on the worker
// goroutine and should return quickly.
func WithDeadLetterHook(hook func(context.Context, DeadLetter)) Option {
	return func(o *schedulerOptions) {
		if hook != nil {
			o.deadLetterHooks = append(o.deadLetterHooks, hook)
		}
	}
}

// WithEventBufferSize sets the per-subscriber event buffer. Subscribers
// that fall further behind than this lose events.
func WithEventBufferSize(n int) Option {
	return func(o *schedulerOptions) {
		if n > 0 {
			o.eventBufferSize = n
		}
	}
}

// WithRecurringInterval sets how often recurring job schedules are checked.
func WithRecurringInterval(d time.Duration) Option {
	return func(o *schedulerOptions) {
		if d > 0 {
			o.recurringInterval = d
		}
	}
}
