package alert

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/stayforge/hotelops/pkg/queue"
)

// CriticalFailureHook returns a dead letter hook that alerts the
// administrative channel when a critical-priority job exhausts its
// attempts. Lower priorities are left to dashboards and the dead letter
// sink. Pass the result to queue.WithDeadLetterHook.
func CriticalFailureHook(alerter Alerter, logger *slog.Logger) func(context.Context, queue.DeadLetter) {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, dl queue.DeadLetter) {
		if dl.Job.Priority != queue.PriorityCritical {
			return
		}

		a := Alert{
			Subject: fmt.Sprintf("critical job failed permanently in queue %q", dl.Job.Queue),
			Message: dl.Error,
			Tag:     "dead-letter",
			Fields: map[string]string{
				"queue":    dl.Job.Queue,
				"job_id":   dl.Job.ID.String(),
				"attempts": strconv.Itoa(dl.Job.Attempts),
			},
			At: dl.FailedAt,
		}

		if err := alerter.Send(ctx, a); err != nil {
			logger.Error("failed to deliver critical failure alert",
				slog.String("queue", dl.Job.Queue),
				slog.String("job_id", dl.Job.ID.String()),
				slog.String("error", err.Error()))
		}
	}
}
