package broadcast

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemoryBroadcaster fans values out to in-process subscribers. Slow
// consumers have values dropped rather than blocking the publisher; the
// subscription itself survives, so a consumer that catches up keeps
// receiving. All methods are safe for concurrent use.
type MemoryBroadcaster[T any] struct {
	subscribers map[*subscriber[T]]struct{}
	bufferSize  int
	closed      bool
	done        chan struct{}
	dropped     atomic.Uint64
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup
}

// NewMemoryBroadcaster creates an in-memory broadcaster. bufferSize sets the
// per-subscriber channel buffer; values below 1 are raised to 1 so sends
// stay non-blocking.
func NewMemoryBroadcaster[T any](bufferSize int) *MemoryBroadcaster[T] {
	return &MemoryBroadcaster[T]{
		subscribers: make(map[*subscriber[T]]struct{}),
		bufferSize:  max(bufferSize, 1),
		done:        make(chan struct{}),
	}
}

// Subscribe creates a subscriber receiving every value published after this
// call. The subscription is removed when ctx is canceled. Subscribing to a
// closed broadcaster returns an already-closed subscriber.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscriber[T](b.bufferSize)

	if b.closed {
		_ = sub.Close()
		return sub
	}

	b.subscribers[sub] = struct{}{}

	// The cleanup goroutine must not outlive the broadcaster: Close waits
	// for it, so it watches the done channel alongside the caller's context.
	if ctx.Done() != nil {
		b.cleanupWg.Add(1)
		go func() {
			defer b.cleanupWg.Done()
			select {
			case <-ctx.Done():
				b.unsubscribe(sub)
			case <-b.done:
			}
		}()
	}

	return sub
}

// Broadcast delivers v to all active subscribers without blocking. Values
// that do not fit a subscriber's buffer are counted as dropped and the
// subscriber keeps its subscription.
func (b *MemoryBroadcaster[T]) Broadcast(_ context.Context, v T) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	for sub := range b.subscribers {
		if !sub.send(v) {
			b.dropped.Add(1)
		}
	}

	return nil
}

// Dropped returns the number of values dropped across all subscribers since
// the broadcaster was created.
func (b *MemoryBroadcaster[T]) Dropped() uint64 {
	return b.dropped.Load()
}

// Close shuts down the broadcaster and closes every subscriber. It is safe
// to call multiple times.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()

	if b.closed {
		b.mu.Unlock()
		return nil
	}

	b.closed = true
	close(b.done)

	for sub := range b.subscribers {
		_ = sub.Close()
	}

	clear(b.subscribers)
	b.mu.Unlock()

	// Cleanup goroutines hold references to subscribers; wait for them so
	// Close fully quiesces the broadcaster.
	b.cleanupWg.Wait()

	return nil
}

func (b *MemoryBroadcaster[T]) unsubscribe(sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subscribers, sub)
	_ = sub.Close()
}
