package queue

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// JobContext identifies the job a handler is executing. Workers attach it
// to the handler context so code deep in the call tree can correlate its
// work with the job without the Job being passed down.
type JobContext struct {
	ID      uuid.UUID
	Queue   string
	Attempt int
}

type jobContextKey struct{}

func withJobContext(ctx context.Context, jc JobContext) context.Context {
	return context.WithValue(ctx, jobContextKey{}, jc)
}

// JobFromContext reports the identity of the running job when ctx descends
// from a worker execution.
func JobFromContext(ctx context.Context) (JobContext, bool) {
	jc, ok := ctx.Value(jobContextKey{}).(JobContext)
	return jc, ok
}

// JobLogAttrs is a logging context extractor. Loggers built with it tag
// every record emitted during job execution with the job identity:
//
//	log := logger.NewFromConfig(cfg, logger.WithContextExtractors(queue.JobLogAttrs))
func JobLogAttrs(ctx context.Context) []slog.Attr {
	jc, ok := JobFromContext(ctx)
	if !ok {
		return nil
	}
	return []slog.Attr{
		slog.String("job_id", jc.ID.String()),
		slog.String("queue", jc.Queue),
		slog.Int("attempt", jc.Attempt),
	}
}
