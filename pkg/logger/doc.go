// Package logger builds structured log/slog loggers for hotel operations
// services, with context-aware attribute extraction.
//
// Every logger wraps its handler so registered extractors can pull
// job-scoped values (job ID, queue name, attempt) out of a context.Context
// on each record, without threading those values through call sites:
//
//	log := logger.NewFromConfig(cfg,
//		logger.WithAttr(logger.Component("opsserver")),
//		logger.WithContextExtractors(queue.JobLogAttrs),
//	)
//	log.InfoContext(ctx, "room refreshed") // carries job_id, queue, attempt
//
// Config maps the LOG_LEVEL, LOG_FORMAT, LOG_SOURCE, LOG_SERVICE and
// APP_ENV environment variables, for loading with caarlos0/env. Extractors
// run on every record and must be fast and safe for concurrent use.
package logger
