// Package alert delivers administrative alerts for incidents that need an
// operator, not a dashboard: primarily critical-priority jobs that
// exhausted their retry budget.
//
// Two channels implement the Alerter interface: SlogAlerter writes to the
// structured log (the development default and the base layer for log-based
// paging), and the Postmark alerter emails the operations inbox for
// deployments that page by mail.
//
// CriticalFailureHook adapts an Alerter to the scheduler's dead letter
// hook, filtering for critical priority:
//
//	alerter := alert.NewSlogAlerter(logger)
//
//	scheduler, err := queue.NewScheduler(registry,
//		queue.WithDeadLetterHook(alert.CriticalFailureHook(alerter, logger)),
//	)
//
// Alert delivery is best-effort: failures are logged and never interfere
// with job processing.
package alert
