package logger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Error returns an attribute for an error value. Nil errors produce an
// empty string rather than the literal "<nil>".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Component identifies the emitting subsystem (worker, store, api).
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// JobID tags a record with the job identifier.
func JobID(id uuid.UUID) slog.Attr {
	return slog.String("job_id", id.String())
}

// Queue tags a record with the queue name.
func Queue(name string) slog.Attr {
	return slog.String("queue", name)
}

// Attempt tags a record with the current delivery attempt.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Event tags a record with a lifecycle event name.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Duration tags a record with an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
