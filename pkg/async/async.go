package async

import (
	"context"
	"time"
)

// Future is a handle to a computation running in its own goroutine. The
// zero value is not usable; Async is the only constructor.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the asynchronous function completes and returns its
// result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext blocks until the asynchronous function completes or the
// context is done, whichever happens first. When the context wins, the
// context's error is returned and the computation keeps running in the
// background until it finishes on its own.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout blocks until the asynchronous function completes or the
// timeout elapses. On timeout it returns ErrTimeout; the computation keeps
// running in the background.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the asynchronous function has finished,
// without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn in a new goroutine and returns a Future for its result.
// If the context is already done when Async is called, the Future completes
// immediately with the context's error and fn never runs.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}
