package queue

import (
	"context"
	"slices"
	"sync"
	"time"
)

// DeadLetter is a job that exhausted its attempts, together with the error
// that killed it.
type DeadLetter struct {
	Job      Job       `json:"job"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// DeadLetterSink receives jobs that exhausted their attempts. Sink failures
// are logged by the scheduler but never block job processing.
type DeadLetterSink interface {
	// Store persists a dead letter.
	Store(ctx context.Context, entry DeadLetter) error

	// List returns dead letters, newest first. An empty queue name selects
	// all queues; limit <= 0 means no limit.
	List(ctx context.Context, queue string, limit int) ([]DeadLetter, error)
}

// DefaultDeadLetterCapacity bounds the in-memory sink.
const DefaultDeadLetterCapacity = 1000

// MemoryDeadLetterSink keeps dead letters in memory, evicting the oldest
// entries once capacity is reached. It is the sink used when no external
// sink is configured.
type MemoryDeadLetterSink struct {
	mu       sync.RWMutex
	entries  []DeadLetter
	capacity int
}

// NewMemoryDeadLetterSink creates an in-memory sink holding up to capacity
// entries. Non-positive capacities fall back to
// DefaultDeadLetterCapacity.
func NewMemoryDeadLetterSink(capacity int) *MemoryDeadLetterSink {
	if capacity <= 0 {
		capacity = DefaultDeadLetterCapacity
	}
	return &MemoryDeadLetterSink{capacity: capacity}
}

func (s *MemoryDeadLetterSink) Store(_ context.Context, entry DeadLetter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if len(s.entries) > s.capacity {
		s.entries = slices.Delete(s.entries, 0, len(s.entries)-s.capacity)
	}
	return nil
}

func (s *MemoryDeadLetterSink) List(_ context.Context, queue string, limit int) ([]DeadLetter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]DeadLetter, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		if queue != "" && s.entries[i].Job.Queue != queue {
			continue
		}
		out = append(out, s.entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Len returns the number of stored entries.
func (s *MemoryDeadLetterSink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
