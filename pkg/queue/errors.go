package queue

import "errors"

// Common errors
var (
	// ErrRegistryNil is returned when a nil registry is provided.
	ErrRegistryNil = errors.New("registry cannot be nil")

	// ErrQueueNotFound is returned when an operation names a queue that is
	// not in the registry.
	ErrQueueNotFound = errors.New("queue not found in registry")

	// ErrQueueExists is returned when registering a queue name twice.
	ErrQueueExists = errors.New("queue already registered")

	// ErrInvalidQueueName is returned when a queue config has no name.
	ErrInvalidQueueName = errors.New("queue name cannot be empty")

	// ErrInvalidConcurrency is returned when a queue config allows fewer
	// than one concurrent worker.
	ErrInvalidConcurrency = errors.New("max concurrent workers must be at least 1")

	// ErrInvalidTimeout is returned when a queue config has a non-positive
	// job timeout.
	ErrInvalidTimeout = errors.New("job timeout must be positive")

	// ErrInvalidRetryAttempts is returned when a queue config has negative
	// retry attempts.
	ErrInvalidRetryAttempts = errors.New("retry attempts cannot be negative")

	// ErrInvalidRetryDelay is returned when a queue config has a negative
	// retry base delay.
	ErrInvalidRetryDelay = errors.New("retry base delay cannot be negative")

	// ErrInvalidPriority is returned when a priority is outside the defined
	// levels.
	ErrInvalidPriority = errors.New("priority must be critical, high, medium or low")

	// ErrPayloadNil is returned when adding a job with a nil payload.
	ErrPayloadNil = errors.New("payload cannot be nil")

	// ErrPayloadMarshal is returned when payload marshaling fails.
	ErrPayloadMarshal = errors.New("failed to marshal payload to JSON")

	// ErrPayloadDecode is returned by typed handlers when the payload does
	// not decode into the expected type.
	ErrPayloadDecode = errors.New("failed to decode job payload")

	// ErrHandlerNil is returned when registering a nil handler.
	ErrHandlerNil = errors.New("handler cannot be nil")

	// ErrJobTimeout marks executions abandoned after exceeding their
	// timeout. It counts as an ordinary failure for retry purposes.
	ErrJobTimeout = errors.New("job execution timed out")

	// ErrStoreClosed is returned by store operations after shutdown.
	ErrStoreClosed = errors.New("job store is closed")

	// ErrSchedulerStarted is returned when Start is called twice.
	ErrSchedulerStarted = errors.New("scheduler already started")

	// ErrSchedulerNotStarted is returned when Stop is called before Start.
	ErrSchedulerNotStarted = errors.New("scheduler not started")

	// ErrSchedulerClosed is returned when using a scheduler after Stop.
	ErrSchedulerClosed = errors.New("scheduler is closed")

	// ErrNilSchedule is returned when registering a recurring job without a
	// schedule.
	ErrNilSchedule = errors.New("schedule cannot be nil")

	// ErrRecurringExists is returned when a recurring job name is already
	// taken.
	ErrRecurringExists = errors.New("recurring job already registered")

	// ErrInvalidRecurringName is returned when a recurring job has no name.
	ErrInvalidRecurringName = errors.New("recurring job name cannot be empty")
)
