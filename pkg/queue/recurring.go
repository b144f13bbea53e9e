package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// recurringJob is the registration record for a schedule-driven job.
type recurringJob struct {
	name     string
	queue    string
	schedule Schedule
	payload  json.RawMessage
	opts     []JobOption
	nextRun  time.Time
}

// AddRecurring registers a named job template created on a schedule. Each
// firing adds an ordinary job to the queue with the given payload and
// options, so recurring work flows through the same priority, retry and
// dead letter machinery as everything else.
func (s *Scheduler) AddRecurring(name string, schedule Schedule, queueName string, payload any, opts ...JobOption) error {
	if name == "" {
		return ErrInvalidRecurringName
	}
	if schedule == nil {
		return ErrNilSchedule
	}
	if payload == nil {
		return ErrPayloadNil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return errors.Join(ErrPayloadMarshal, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSchedulerClosed
	}
	if _, ok := s.queues[queueName]; !ok {
		return fmt.Errorf("%w: %q", ErrQueueNotFound, queueName)
	}
	if _, ok := s.recurring[name]; ok {
		return fmt.Errorf("%w: %q", ErrRecurringExists, name)
	}

	s.recurring[name] = &recurringJob{
		name:     name,
		queue:    queueName,
		schedule: schedule,
		payload:  raw,
		opts:     opts,
		nextRun:  schedule.Next(time.Now()),
	}

	s.logger.Info("recurring job registered",
		slog.String("name", name),
		slog.String("queue", queueName),
		slog.String("schedule", schedule.String()))

	return nil
}

// RemoveRecurring unregisters a recurring job. Jobs it already created are
// unaffected.
func (s *Scheduler) RemoveRecurring(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recurring[name]; !ok {
		return
	}
	delete(s.recurring, name)

	s.logger.Info("recurring job removed", slog.String("name", name))
}

// RecurringJobs returns the names of registered recurring jobs in lexical
// order.
func (s *Scheduler) RecurringJobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.recurring))
	for name := range s.recurring {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// recurringLoop checks schedules until ctx is canceled.
func (s *Scheduler) recurringLoop(ctx context.Context) {
	ticker := time.NewTicker(s.recurringInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fireDueRecurring(ctx, time.Now())
		}
	}
}

// fireDueRecurring adds a job for every registration whose next run time
// has passed, then advances it.
func (s *Scheduler) fireDueRecurring(ctx context.Context, now time.Time) {
	s.mu.Lock()
	var due []*recurringJob
	for _, r := range s.recurring {
		if !r.nextRun.After(now) {
			due = append(due, r)
			r.nextRun = r.schedule.Next(now)
		}
	}
	s.mu.Unlock()

	for _, r := range due {
		id, err := s.AddJob(ctx, r.queue, r.payload, r.opts...)
		if err != nil {
			s.logger.Error("failed to add recurring job",
				slog.String("name", r.name),
				slog.String("queue", r.queue),
				slog.String("error", err.Error()))
			continue
		}

		s.logger.Info("recurring job fired",
			slog.String("name", r.name),
			slog.String("queue", r.queue),
			slog.String("job_id", id.String()))
	}
}
