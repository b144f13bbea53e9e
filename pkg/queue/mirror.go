package queue

import (
	"context"

	"github.com/google/uuid"
)

// Mirror duplicates the pending set of each queue into an external system
// so operators can inspect queue contents from outside the process. The
// in-memory store stays authoritative; mirror failures are logged and
// never affect job processing.
type Mirror interface {
	// Record registers a job as pending.
	Record(ctx context.Context, job Job) error

	// Remove drops a job from the pending set, typically because a worker
	// took it.
	Remove(ctx context.Context, queue string, jobID uuid.UUID) error

	// Clear drops the whole pending set of a queue.
	Clear(ctx context.Context, queue string) error
}

// NopMirror discards all mirror calls.
type NopMirror struct{}

func (NopMirror) Record(context.Context, Job) error { return nil }

func (NopMirror) Remove(context.Context, string, uuid.UUID) error { return nil }

func (NopMirror) Clear(context.Context, string) error { return nil }
