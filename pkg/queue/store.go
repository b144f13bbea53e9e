package queue

import (
	"container/heap"
	"context"
	"sync"
)

// queuedJob wraps a job with the bookkeeping the heap needs.
type queuedJob struct {
	job *Job
	seq uint64
	idx int
}

// jobHeap orders jobs by priority, then by arrival within the same
// priority, so equal-priority jobs leave in FIFO order.
type jobHeap []*queuedJob

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	if h[i].job.Priority != h[j].job.Priority {
		return h[i].job.Priority < h[j].job.Priority
	}
	return h[i].seq < h[j].seq
}

func (h jobHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].idx = i
	h[j].idx = j
}

func (h *jobHeap) Push(x any) {
	qj := x.(*queuedJob)
	qj.idx = len(*h)
	*h = append(*h, qj)
}

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	qj := old[n-1]
	old[n-1] = nil
	qj.idx = -1
	*h = old[:n-1]
	return qj
}

// store is the in-memory pending set of a single queue. Consumers block in
// Pop until a job is available and the store is neither paused nor closed,
// so there is no polling between the producer and the worker pool.
type store struct {
	mu     sync.Mutex
	cond   *sync.Cond
	heap   jobHeap
	seq    uint64
	paused bool
	closed bool
}

func newStore() *store {
	s := &store{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Push makes a job visible to consumers.
func (s *store) Push(j *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	s.seq++
	heap.Push(&s.heap, &queuedJob{job: j, seq: s.seq})
	s.cond.Signal()
	return nil
}

// Pop blocks until a job is available and the store is not paused. It
// returns the context's error when ctx is done and ErrStoreClosed after
// Close.
func (s *store) Pop(ctx context.Context) (*Job, error) {
	stop := context.AfterFunc(ctx, func() {
		s.cond.Broadcast()
	})
	defer stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.closed {
			return nil, ErrStoreClosed
		}
		if !s.paused && len(s.heap) > 0 {
			qj := heap.Pop(&s.heap).(*queuedJob)
			return qj.job, nil
		}
		s.cond.Wait()
	}
}

// Pause stops consumers from taking jobs. Jobs already handed out are
// unaffected.
func (s *store) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paused = true
}

// Resume lifts a pause and wakes blocked consumers.
func (s *store) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		s.paused = false
		s.cond.Broadcast()
	}
}

// Paused reports whether the store is paused.
func (s *store) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.paused
}

// Clear removes and returns all pending jobs.
func (s *store) Clear() []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make([]*Job, 0, len(s.heap))
	for len(s.heap) > 0 {
		qj := heap.Pop(&s.heap).(*queuedJob)
		removed = append(removed, qj.job)
	}
	return removed
}

// Len returns the number of pending jobs.
func (s *store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.heap)
}

// Close marks the store closed and wakes all blocked consumers. Pending
// jobs are discarded.
func (s *store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.heap = nil
	s.cond.Broadcast()
}
