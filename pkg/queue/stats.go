package queue

import (
	"sync"
	"time"
)

// Stats is a point-in-time snapshot of a queue's counters.
type Stats struct {
	Queue        string `json:"queue"`
	Paused       bool   `json:"paused"`
	Pending      int    `json:"pending"`
	Processing   int    `json:"processing"`
	Delayed      int    `json:"delayed"`
	Completed    uint64 `json:"completed"`
	Failed       uint64 `json:"failed"`
	Retried      uint64 `json:"retried"`
	DeadLettered uint64 `json:"dead_lettered"`

	// AvgProcessingTime is the running mean duration of completed
	// executions.
	AvgProcessingTime time.Duration `json:"avg_processing_time"`

	// LastProcessedAt is the completion time of the most recent successful
	// execution, zero until the queue completes its first job.
	LastProcessedAt time.Time `json:"last_processed_at,omitzero"`
}

// statsTracker accumulates per-queue counters. Pending count lives in the
// store; everything else is tracked here.
type statsTracker struct {
	mu            sync.Mutex
	processing    int
	delayed       int
	completed     uint64
	failed        uint64
	retried       uint64
	deadLettered  uint64
	avg           time.Duration
	lastProcessed time.Time
}

func (t *statsTracker) jobStarted() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processing++
}

func (t *statsTracker) jobCompleted(duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processing--
	t.completed++
	t.lastProcessed = time.Now()

	// Incremental mean avoids keeping per-job history around.
	n := time.Duration(t.completed)
	t.avg += (duration - t.avg) / n
}

func (t *statsTracker) jobRetried() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processing--
	t.retried++
}

func (t *statsTracker) jobDeadLettered() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processing--
	t.failed++
	t.deadLettered++
}

func (t *statsTracker) delayedAdded() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.delayed++
}

func (t *statsTracker) delayedDone() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.delayed--
}

// snapshot merges the tracker counters with the store-owned pending count
// and pause flag.
func (t *statsTracker) snapshot(queue string, pending int, paused bool) Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Stats{
		Queue:             queue,
		Paused:            paused,
		Pending:           pending,
		Processing:        t.processing,
		Delayed:           t.delayed,
		Completed:         t.completed,
		Failed:            t.failed,
		Retried:           t.retried,
		DeadLettered:      t.deadLettered,
		AvgProcessingTime: t.avg,
		LastProcessedAt:   t.lastProcessed,
	}
}
