package queue

import "time"

// JobOption customizes a single job at add time.
type JobOption func(*jobOptions)

type jobOptions struct {
	priority    Priority
	delay       time.Duration
	runAt       time.Time
	maxAttempts int
	timeout     time.Duration
	metadata    map[string]string
}

// WithPriority sets the job's priority level.
func WithPriority(p Priority) JobOption {
	return func(o *jobOptions) {
		o.priority = p
	}
}

// WithDelay holds the job back for d before it becomes visible to workers.
func WithDelay(d time.Duration) JobOption {
	return func(o *jobOptions) {
		if d > 0 {
			o.delay = d
		}
	}
}

// WithRunAt holds the job back until the given time. It takes precedence
// over WithDelay.
func WithRunAt(t time.Time) JobOption {
	return func(o *jobOptions) {
		o.runAt = t
	}
}

// WithMaxAttempts overrides the queue's attempt budget for this job. The
// count includes the first execution; values below 1 are raised to 1.
func WithMaxAttempts(n int) JobOption {
	return func(o *jobOptions) {
		o.maxAttempts = max(n, 1)
	}
}

// WithJobTimeout overrides the queue's execution timeout for this job.
func WithJobTimeout(d time.Duration) JobOption {
	return func(o *jobOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMetadata attaches a key/value pair to the job. It may be used
// multiple times.
func WithMetadata(key, value string) JobOption {
	return func(o *jobOptions) {
		if o.metadata == nil {
			o.metadata = make(map[string]string)
		}
		o.metadata[key] = value
	}
}
