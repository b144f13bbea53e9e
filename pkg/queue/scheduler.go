package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stayforge/hotelops/pkg/broadcast"
)

// queueRuntime bundles the state owned by a single queue: its config, its
// pending store and its counters.
type queueRuntime struct {
	config  QueueConfig
	store   *store
	stats   *statsTracker
	running bool
}

// Scheduler routes jobs to per-queue pools of blocking consumers. Each
// queue declared in the registry gets its own pending store, its own
// counters and up to MaxConcurrent workers.
//
// Jobs may be added as soon as the scheduler is constructed; they are
// consumed once Start has been called and a handler is registered for
// their queue. A scheduler is single-use: after Stop it cannot be started
// again.
type Scheduler struct {
	registry *Registry
	logger   *slog.Logger
	sink     DeadLetterSink
	mirror   Mirror
	dlHooks  []func(context.Context, DeadLetter)
	events   *broadcast.MemoryBroadcaster[Event]

	recurringInterval time.Duration

	mu        sync.RWMutex
	queues    map[string]*queueRuntime
	handlers  map[string]Handler
	recurring map[string]*recurringJob
	runCtx    context.Context
	cancel    context.CancelFunc
	closed    bool

	quit    chan struct{}
	wg      sync.WaitGroup
	timerWg sync.WaitGroup
}

// NewScheduler creates a scheduler managing the queues present in the
// registry.
func NewScheduler(registry *Registry, opts ...Option) (*Scheduler, error) {
	if registry == nil {
		return nil, ErrRegistryNil
	}

	options := &schedulerOptions{
		logger:            slog.Default(),
		sink:              NewMemoryDeadLetterSink(0),
		mirror:            NopMirror{},
		eventBufferSize:   64,
		recurringInterval: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(options)
	}

	s := &Scheduler{
		registry:          registry,
		logger:            options.logger,
		sink:              options.sink,
		mirror:            options.mirror,
		dlHooks:           options.deadLetterHooks,
		events:            broadcast.NewMemoryBroadcaster[Event](options.eventBufferSize),
		recurringInterval: options.recurringInterval,
		queues:            make(map[string]*queueRuntime, registry.Len()),
		handlers:          make(map[string]Handler),
		recurring:         make(map[string]*recurringJob),
		quit:              make(chan struct{}),
	}

	for _, cfg := range registry.Configs() {
		s.queues[cfg.Name] = &queueRuntime{
			config: cfg,
			store:  newStore(),
			stats:  &statsTracker{},
		}
	}

	return s, nil
}

// RegisterHandler sets the handler processing jobs of the named queue.
// Registering again replaces the previous handler. If the scheduler is
// already running, the queue's consumers start immediately.
func (s *Scheduler) RegisterHandler(queueName string, handler Handler) error {
	if handler == nil {
		return ErrHandlerNil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSchedulerClosed
	}

	rt, ok := s.queues[queueName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrQueueNotFound, queueName)
	}

	s.handlers[queueName] = handler

	if s.runCtx != nil && !rt.running {
		s.startWorkersLocked(rt)
	}

	return nil
}

// AddJob adds a job to the named queue and returns its ID. The call is
// fire-and-forget: it returns as soon as the job is accepted, and the
// job's outcome is observable through events, stats and the dead letter
// sink.
func (s *Scheduler) AddJob(ctx context.Context, queueName string, payload any, opts ...JobOption) (uuid.UUID, error) {
	rt, err := s.runtime(queueName)
	if err != nil {
		return uuid.Nil, err
	}
	if payload == nil {
		return uuid.Nil, ErrPayloadNil
	}

	// Job defaults come from the queue config: its priority class, its
	// timeout, and its retry budget (total executions, at least one).
	options := &jobOptions{
		priority:    rt.config.Priority,
		maxAttempts: max(rt.config.RetryAttempts, 1),
		timeout:     rt.config.Timeout,
	}
	for _, opt := range opts {
		opt(options)
	}
	if !options.priority.Valid() {
		return uuid.Nil, ErrInvalidPriority
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, errors.Join(ErrPayloadMarshal, err)
	}

	now := time.Now()
	delay := options.delay
	if !options.runAt.IsZero() {
		delay = time.Until(options.runAt)
	}
	if delay < 0 {
		delay = 0
	}

	job := &Job{
		ID:          uuid.New(),
		Queue:       queueName,
		Payload:     raw,
		Priority:    options.priority,
		Status:      StatusPending,
		MaxAttempts: options.maxAttempts,
		Timeout:     options.timeout,
		Metadata:    options.metadata,
		CreatedAt:   now,
		ScheduledAt: now.Add(delay),
	}

	if err := s.scheduleDelivery(rt, job, delay); err != nil {
		return uuid.Nil, err
	}

	s.publishJob(EventJobAdded, rt, job, nil)

	s.logger.DebugContext(ctx, "job added",
		slog.String("queue", queueName),
		slog.String("job_id", job.ID.String()),
		slog.String("priority", job.Priority.String()),
		slog.Duration("delay", delay))

	return job.ID, nil
}

// Stats returns a snapshot of the named queue's counters.
func (s *Scheduler) Stats(queueName string) (Stats, error) {
	s.mu.RLock()
	rt, ok := s.queues[queueName]
	s.mu.RUnlock()

	if !ok {
		return Stats{}, fmt.Errorf("%w: %q", ErrQueueNotFound, queueName)
	}
	return s.statsFor(rt), nil
}

// AllStats returns snapshots for every queue, ordered by name.
func (s *Scheduler) AllStats() []Stats {
	s.mu.RLock()
	runtimes := make([]*queueRuntime, 0, len(s.queues))
	for _, rt := range s.queues {
		runtimes = append(runtimes, rt)
	}
	s.mu.RUnlock()

	out := make([]Stats, 0, len(runtimes))
	for _, rt := range runtimes {
		out = append(out, s.statsFor(rt))
	}
	slices.SortFunc(out, func(a, b Stats) int {
		return strings.Compare(a.Queue, b.Queue)
	})
	return out
}

// ClearQueue removes all pending jobs from the named queue and returns how
// many were removed. Jobs being processed and jobs still waiting on a
// delay or retry timer are unaffected.
func (s *Scheduler) ClearQueue(ctx context.Context, queueName string) (int, error) {
	rt, err := s.runtime(queueName)
	if err != nil {
		return 0, err
	}

	removed := rt.store.Clear()

	if err := s.mirror.Clear(ctx, queueName); err != nil {
		s.logger.Warn("failed to clear queue mirror",
			slog.String("queue", queueName),
			slog.String("error", err.Error()))
	}

	s.publishQueue(EventQueueCleared, rt)

	s.logger.InfoContext(ctx, "queue cleared",
		slog.String("queue", queueName),
		slog.Int("removed", len(removed)))

	return len(removed), nil
}

// PauseQueue stops consumers of the named queue from taking new jobs.
// Jobs already being processed run to completion.
func (s *Scheduler) PauseQueue(queueName string) error {
	rt, err := s.runtime(queueName)
	if err != nil {
		return err
	}

	rt.store.Pause()
	s.publishQueue(EventQueuePaused, rt)

	s.logger.Info("queue paused", slog.String("queue", queueName))
	return nil
}

// ResumeQueue lifts a pause.
func (s *Scheduler) ResumeQueue(queueName string) error {
	rt, err := s.runtime(queueName)
	if err != nil {
		return err
	}

	rt.store.Resume()
	s.publishQueue(EventQueueResumed, rt)

	s.logger.Info("queue resumed", slog.String("queue", queueName))
	return nil
}

// Events returns a channel of lifecycle events. The subscription lives
// until ctx is canceled or the scheduler stops. Slow consumers lose events
// rather than blocking job processing.
func (s *Scheduler) Events(ctx context.Context) <-chan Event {
	return s.events.Subscribe(ctx).Receive(ctx)
}

// Queues returns the configs of all managed queues ordered by name.
func (s *Scheduler) Queues() []QueueConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	configs := make([]QueueConfig, 0, len(s.queues))
	for _, rt := range s.queues {
		configs = append(configs, rt.config)
	}
	slices.SortFunc(configs, func(a, b QueueConfig) int {
		return strings.Compare(a.Name, b.Name)
	})
	return configs
}

// DeadLetters lists dead-lettered jobs from the configured sink, newest
// first. An empty queue name selects all queues.
func (s *Scheduler) DeadLetters(ctx context.Context, queueName string, limit int) ([]DeadLetter, error) {
	return s.sink.List(ctx, queueName, limit)
}

// Start launches consumers for every queue that has a handler registered
// and begins checking recurring job schedules.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSchedulerClosed
	}
	if s.cancel != nil {
		return ErrSchedulerStarted
	}

	s.runCtx, s.cancel = context.WithCancel(ctx)

	consuming := 0
	for name, rt := range s.queues {
		if s.handlers[name] != nil {
			s.startWorkersLocked(rt)
			consuming++
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.recurringLoop(s.runCtx)
	}()

	s.logger.Info("scheduler started",
		slog.Int("queues", len(s.queues)),
		slog.Int("consuming", consuming))

	return nil
}

// Stop shuts the scheduler down: consumers stop taking new jobs, in-flight
// executions finish within their timeouts, and pending delay timers are
// discarded. The scheduler cannot be restarted afterwards.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		if s.closed {
			return ErrSchedulerClosed
		}
		return ErrSchedulerNotStarted
	}
	cancel := s.cancel
	s.cancel = nil
	s.closed = true
	s.mu.Unlock()

	close(s.quit)
	cancel()

	s.logger.Info("scheduler stopping, waiting for in-flight jobs")

	s.wg.Wait()
	s.timerWg.Wait()

	s.mu.RLock()
	for _, rt := range s.queues {
		rt.store.Close()
	}
	s.mu.RUnlock()

	_ = s.events.Close()

	if dropped := s.events.Dropped(); dropped > 0 {
		s.logger.Warn("event subscribers missed broadcasts",
			slog.Uint64("dropped", dropped))
	}

	s.logger.Info("scheduler stopped")
	return nil
}

// Run starts the scheduler and returns a function suitable for errgroup:
// it blocks until ctx is done, then performs a graceful stop.
func (s *Scheduler) Run(ctx context.Context) func() error {
	return func() error {
		if err := s.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()

		return s.Stop()
	}
}

// startWorkersLocked launches the queue's consumer pool. Callers must hold
// s.mu and have checked that the scheduler is running.
func (s *Scheduler) startWorkersLocked(rt *queueRuntime) {
	if rt.running {
		return
	}
	rt.running = true

	for i := 1; i <= rt.config.MaxConcurrent; i++ {
		w := &worker{
			id:     i,
			sched:  s,
			rt:     rt,
			logger: s.logger,
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			w.loop(s.runCtx)
		}()
	}

	s.logger.Info("queue consumers started",
		slog.String("queue", rt.config.Name),
		slog.Int("workers", rt.config.MaxConcurrent))
}

// runtime resolves a queue name, failing when the queue is unknown or the
// scheduler is closed.
func (s *Scheduler) runtime(queueName string) (*queueRuntime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrSchedulerClosed
	}
	rt, ok := s.queues[queueName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrQueueNotFound, queueName)
	}
	return rt, nil
}

func (s *Scheduler) handlerFor(queueName string) Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.handlers[queueName]
}

// scheduleDelivery pushes the job to the queue's store, after a timer when
// delay is positive. Delayed jobs are invisible to consumers and to
// ClearQueue until the timer fires; timers still pending at shutdown are
// discarded.
func (s *Scheduler) scheduleDelivery(rt *queueRuntime, job *Job, delay time.Duration) error {
	if delay <= 0 {
		return s.deliver(rt, job)
	}

	// The timer registration is serialized with Stop through mu: once
	// closed is set no timer can be added, so the shutdown wait cannot
	// race a fresh Add.
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrSchedulerClosed
	}
	rt.stats.delayedAdded()
	s.timerWg.Add(1)
	s.mu.RUnlock()

	go func() {
		defer s.timerWg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			rt.stats.delayedDone()
			if err := s.deliver(rt, job); err != nil {
				s.logger.Debug("dropping delayed job",
					slog.String("queue", job.Queue),
					slog.String("job_id", job.ID.String()),
					slog.String("error", err.Error()))
			}
		case <-s.quit:
			rt.stats.delayedDone()
		}
	}()

	return nil
}

// deliver makes the job visible to consumers and mirrors it.
func (s *Scheduler) deliver(rt *queueRuntime, job *Job) error {
	job.Status = StatusPending

	if err := rt.store.Push(job); err != nil {
		return err
	}

	if err := s.mirror.Record(context.Background(), *job); err != nil {
		s.logger.Warn("failed to mirror job",
			slog.String("queue", job.Queue),
			slog.String("job_id", job.ID.String()),
			slog.String("error", err.Error()))
	}

	return nil
}

// publishJob broadcasts a job lifecycle event with a fresh stats snapshot.
func (s *Scheduler) publishJob(typ EventType, rt *queueRuntime, job *Job, execErr error) {
	j := *job
	ev := Event{
		Type:  typ,
		Queue: rt.config.Name,
		Job:   &j,
		Stats: s.statsFor(rt),
		At:    time.Now(),
	}
	if execErr != nil {
		ev.Error = execErr.Error()
	}
	_ = s.events.Broadcast(context.Background(), ev)
}

// publishQueue broadcasts a queue-level event.
func (s *Scheduler) publishQueue(typ EventType, rt *queueRuntime) {
	_ = s.events.Broadcast(context.Background(), Event{
		Type:  typ,
		Queue: rt.config.Name,
		Stats: s.statsFor(rt),
		At:    time.Now(),
	})
}

func (s *Scheduler) statsFor(rt *queueRuntime) Stats {
	return rt.stats.snapshot(rt.config.Name, rt.store.Len(), rt.store.Paused())
}
