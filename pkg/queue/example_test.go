package queue_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/stayforge/hotelops/pkg/queue"
)

// Example_priorityOrder demonstrates that pending jobs are processed in
// priority order regardless of submission order.
func Example_priorityOrder() {
	registry, err := queue.NewRegistry(queue.QueueConfig{
		Name:           "housekeeping",
		Priority:       queue.PriorityMedium,
		MaxConcurrent:  1,
		Timeout:        time.Second,
		RetryAttempts:  1,
		RetryBaseDelay: 10 * time.Millisecond,
	})
	if err != nil {
		panic(err)
	}

	scheduler, err := queue.NewScheduler(registry,
		queue.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		panic(err)
	}

	type cleaningRequest struct {
		Room string `json:"room"`
	}

	done := make(chan struct{}, 3)
	err = scheduler.RegisterHandler("housekeeping", queue.NewHandler(
		func(ctx context.Context, req cleaningRequest) error {
			fmt.Printf("cleaning room %s\n", req.Room)
			done <- struct{}{}
			return nil
		},
	))
	if err != nil {
		panic(err)
	}

	if err := scheduler.Start(context.Background()); err != nil {
		panic(err)
	}

	// Pause so all three jobs are pending before the consumer takes any.
	if err := scheduler.PauseQueue("housekeeping"); err != nil {
		panic(err)
	}

	ctx := context.Background()
	if _, err := scheduler.AddJob(ctx, "housekeeping", cleaningRequest{Room: "410"},
		queue.WithPriority(queue.PriorityLow)); err != nil {
		panic(err)
	}
	if _, err := scheduler.AddJob(ctx, "housekeeping", cleaningRequest{Room: "1204"},
		queue.WithPriority(queue.PriorityCritical)); err != nil {
		panic(err)
	}
	if _, err := scheduler.AddJob(ctx, "housekeeping", cleaningRequest{Room: "808"},
		queue.WithPriority(queue.PriorityHigh)); err != nil {
		panic(err)
	}

	if err := scheduler.ResumeQueue("housekeeping"); err != nil {
		panic(err)
	}

	for i := 0; i < 3; i++ {
		<-done
	}

	if err := scheduler.Stop(); err != nil {
		panic(err)
	}

	// Output:
	// cleaning room 1204
	// cleaning room 808
	// cleaning room 410
}

// Example_retries demonstrates the retry flow: a failing job is retried
// with backoff until it succeeds or exhausts its attempts.
func Example_retries() {
	registry, err := queue.NewRegistry(queue.QueueConfig{
		Name:           "maintenance",
		Priority:       queue.PriorityHigh,
		MaxConcurrent:  1,
		Timeout:        time.Second,
		RetryAttempts:  2,
		RetryBaseDelay: 10 * time.Millisecond,
	})
	if err != nil {
		panic(err)
	}

	scheduler, err := queue.NewScheduler(registry,
		queue.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		panic(err)
	}

	done := make(chan struct{})
	err = scheduler.RegisterHandler("maintenance", queue.HandlerFunc(
		func(ctx context.Context, job queue.Job) error {
			if job.Attempts < 2 {
				fmt.Printf("attempt %d: boiler still offline\n", job.Attempts)
				return fmt.Errorf("boiler offline")
			}
			fmt.Printf("attempt %d: boiler restarted\n", job.Attempts)
			close(done)
			return nil
		},
	))
	if err != nil {
		panic(err)
	}

	if err := scheduler.Start(context.Background()); err != nil {
		panic(err)
	}

	if _, err := scheduler.AddJob(context.Background(), "maintenance", "restart boiler"); err != nil {
		panic(err)
	}

	<-done

	if err := scheduler.Stop(); err != nil {
		panic(err)
	}

	// Output:
	// attempt 1: boiler still offline
	// attempt 2: boiler restarted
}
