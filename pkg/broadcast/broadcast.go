package broadcast

import (
	"context"
	"sync"
)

// Subscriber receives values from a Broadcaster. Implementations must
// tolerate concurrent callers.
type Subscriber[T any] interface {
	// Receive returns the channel on which broadcast values arrive. The
	// context parameter lets networked implementations respect cancellation
	// during blocking operations; the in-memory implementation ignores it.
	Receive(ctx context.Context) <-chan T

	// Close closes the subscriber and its receive channel. Close is
	// idempotent.
	Close() error
}

// Broadcaster fans values out to multiple subscribers.
// Implementations must never block the publisher on a slow consumer.
type Broadcaster[T any] interface {
	// Subscribe creates a subscriber that receives all values published
	// after this call. The subscription is cleaned up when the context is
	// canceled.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast delivers a value to all active subscribers. Values are
	// dropped for subscribers whose buffers are full.
	Broadcast(ctx context.Context, v T) error

	// Close stops the broadcaster and closes every subscriber.
	Close() error
}

type subscriber[T any] struct {
	ch     chan T
	closed bool
	mu     sync.RWMutex
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{
		ch: make(chan T, bufferSize),
	}
}

func (s *subscriber[T]) Receive(_ context.Context) <-chan T {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send attempts a non-blocking delivery. It reports false when the value was
// dropped, either because the subscriber is closed or its buffer is full.
func (s *subscriber[T]) send(v T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- v:
		return true
	default:
		return false
	}
}
