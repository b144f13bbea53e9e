package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stayforge/hotelops/pkg/async"
)

const (
	// errorPause is how long a consumer sleeps after an unexpected dequeue
	// failure before trying again, so a persistent store error cannot spin
	// the loop.
	errorPause = 5 * time.Second

	// sinkTimeout bounds dead letter sink writes so a stuck sink cannot
	// wedge a worker.
	sinkTimeout = 5 * time.Second

	// maxBackoffShift caps exponential retry growth so the delay cannot
	// overflow.
	maxBackoffShift = 16
)

// worker is a single blocking consumer of one queue. A queue's pool holds
// MaxConcurrent workers, which bounds how many of its jobs run at once.
type worker struct {
	id     int
	sched  *Scheduler
	rt     *queueRuntime
	logger *slog.Logger
}

// loop consumes jobs until ctx is canceled or the store closes. There is
// no polling: Pop blocks until a job is available and the queue is not
// paused.
func (w *worker) loop(ctx context.Context) {
	for {
		job, err := w.rt.store.Pop(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded) ||
				errors.Is(err, ErrStoreClosed) {
				return
			}

			w.logger.Error("failed to dequeue job",
				slog.String("queue", w.rt.config.Name),
				slog.Int("worker", w.id),
				slog.String("error", err.Error()))

			select {
			case <-time.After(errorPause):
			case <-ctx.Done():
				return
			}
			continue
		}

		w.process(ctx, job)
	}
}

// process runs one execution attempt of a job.
func (w *worker) process(ctx context.Context, job *Job) {
	if err := w.sched.mirror.Remove(ctx, job.Queue, job.ID); err != nil {
		w.logger.Warn("failed to remove job from mirror",
			slog.String("queue", job.Queue),
			slog.String("job_id", job.ID.String()),
			slog.String("error", err.Error()))
	}

	handler := w.sched.handlerFor(job.Queue)

	job.Attempts++
	job.Status = StatusProcessing
	w.rt.stats.jobStarted()
	w.sched.publishJob(EventJobStarted, w.rt, job, nil)

	w.logger.Debug("job started",
		slog.String("queue", job.Queue),
		slog.String("job_id", job.ID.String()),
		slog.Int("worker", w.id),
		slog.Int("attempt", job.Attempts))

	timeout := job.Timeout
	if timeout <= 0 {
		timeout = w.rt.config.Timeout
	}

	// The job context is detached from the worker's, so graceful shutdown
	// lets in-flight executions finish within their timeout.
	jobCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	jobCtx = withJobContext(jobCtx, JobContext{ID: job.ID, Queue: job.Queue, Attempt: job.Attempts})

	start := time.Now()

	fut := async.Async(jobCtx, *job, func(hctx context.Context, j Job) (_ struct{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in handler: %v", r)
			}
		}()
		return struct{}{}, handler.Handle(hctx, j)
	})

	// When the timeout wins, the handler keeps running on its goroutine
	// with a canceled context while the worker moves on to the retry
	// decision.
	_, err := fut.AwaitContext(jobCtx)
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %v", ErrJobTimeout, timeout)
	}

	duration := time.Since(start)

	if err != nil {
		w.fail(job, err, duration)
		return
	}

	job.Status = StatusCompleted
	w.rt.stats.jobCompleted(duration)
	w.sched.publishJob(EventJobCompleted, w.rt, job, nil)

	w.logger.Info("job completed",
		slog.String("queue", job.Queue),
		slog.String("job_id", job.ID.String()),
		slog.Int("attempt", job.Attempts),
		slog.Duration("duration", duration))
}

// fail decides between retry and dead letter after a failed attempt.
func (w *worker) fail(job *Job, execErr error, duration time.Duration) {
	job.LastError = execErr.Error()

	if job.Attempts >= job.MaxAttempts {
		w.deadLetter(job, execErr, duration)
		return
	}

	job.Status = StatusRetrying
	delay := backoff(w.rt.config.RetryBaseDelay, job.Attempts)
	w.rt.stats.jobRetried()
	w.sched.publishJob(EventJobRetrying, w.rt, job, execErr)

	w.logger.Warn("job failed, retry scheduled",
		slog.String("queue", job.Queue),
		slog.String("job_id", job.ID.String()),
		slog.Int("attempt", job.Attempts),
		slog.Int("max_attempts", job.MaxAttempts),
		slog.Duration("backoff", delay),
		slog.Duration("duration", duration),
		slog.String("error", execErr.Error()))

	job.ScheduledAt = time.Now().Add(delay)
	if err := w.sched.scheduleDelivery(w.rt, job, delay); err != nil {
		w.logger.Error("failed to requeue job for retry",
			slog.String("queue", job.Queue),
			slog.String("job_id", job.ID.String()),
			slog.String("error", err.Error()))
	}
}

// deadLetter records a job that exhausted its attempts.
func (w *worker) deadLetter(job *Job, execErr error, duration time.Duration) {
	job.Status = StatusFailed
	w.rt.stats.jobDeadLettered()

	entry := DeadLetter{
		Job:      *job,
		Error:    execErr.Error(),
		FailedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()

	if err := w.sched.sink.Store(ctx, entry); err != nil {
		w.logger.Error("failed to store dead letter",
			slog.String("queue", job.Queue),
			slog.String("job_id", job.ID.String()),
			slog.String("error", err.Error()))
	}

	for _, hook := range w.sched.dlHooks {
		hook(ctx, entry)
	}

	w.sched.publishJob(EventJobFailed, w.rt, job, execErr)

	w.logger.Error("job dead-lettered",
		slog.String("queue", job.Queue),
		slog.String("job_id", job.ID.String()),
		slog.Int("attempts", job.Attempts),
		slog.Duration("duration", duration),
		slog.String("error", execErr.Error()))
}

// backoff computes the delay before the next attempt as
// base * 2^(attempts-1), where attempts counts executions made so far.
func backoff(base time.Duration, attempts int) time.Duration {
	if base <= 0 {
		return 0
	}
	shift := attempts - 1
	if shift < 0 {
		shift = 0
	}
	if shift > maxBackoffShift {
		shift = maxBackoffShift
	}
	return base << uint(shift)
}
