// Package queue implements an in-process job scheduler for hotel
// operations backends: named queues with priority ordering, bounded
// per-queue worker pools, execution timeouts, exponential retry backoff
// and dead letter capture.
//
// # Model
//
// Queues are declared up front in a Registry, typically loaded from YAML:
//
//	queues:
//	  - name: housekeeping
//	    priority: medium
//	    max_concurrent: 4
//	    timeout: 45s
//	    retry_attempts: 3
//	    retry_base_delay: 2s
//
// Each queue gets its own pending store and a pool of MaxConcurrent
// blocking consumers, so one slow queue never starves another. Within a
// queue, jobs dequeue by priority (critical, high, medium, low) and FIFO
// inside the same priority. A job takes its queue's priority class unless
// WithPriority overrides it.
//
// # Usage
//
//	registry, err := queue.LoadRegistry("queues.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scheduler, err := queue.NewScheduler(registry,
//		queue.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = scheduler.RegisterHandler("housekeeping", queue.NewHandler(
//		func(ctx context.Context, req CleanRoomRequest) error {
//			return cleanRoom(ctx, req)
//		},
//	))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := scheduler.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer scheduler.Stop()
//
//	id, err := scheduler.AddJob(ctx, "housekeeping",
//		CleanRoomRequest{Room: "1204"},
//		queue.WithPriority(queue.PriorityHigh),
//	)
//
// AddJob is fire-and-forget: it returns once the job is accepted. Outcomes
// are observable through Stats, the Events stream and the dead letter
// sink.
//
// # Failure handling
//
// A job that returns an error, panics or exceeds its timeout counts as a
// failed attempt. Failed jobs are retried with exponential backoff
// (RetryBaseDelay * 2^(k-1) before the k-th retry) until their attempt
// budget is exhausted, then handed to the DeadLetterSink. Timed-out
// executions have their context canceled and are abandoned; the handler
// goroutine finishes on its own.
//
// # Lifecycle events
//
// Every transition broadcasts an Event carrying a stats snapshot:
//
//	events := scheduler.Events(ctx)
//	for ev := range events {
//		fmt.Println(ev.Type, ev.Queue, ev.Stats.Pending)
//	}
//
// Event delivery is lossy for slow subscribers; the processing hot path
// never blocks on an observer.
package queue
