// Package deadletter provides durable sinks for jobs that exhausted their
// retry attempts, plus an export helper for archiving snapshots.
//
// The queue package ships an in-memory sink suitable for tests and
// short-lived processes. This package adds three persistent implementations
// of queue.DeadLetterSink:
//
//   - PostgresSink stores entries in a table with the job as JSONB,
//     queryable with plain SQL. Schema lives in the repository migrations.
//   - MongoSink stores entries as native documents in a collection.
//   - FileSink appends JSONL lines to a local file.
//
// All sinks share List semantics with the in-memory one: newest first,
// optional queue filter, limit <= 0 returns everything.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, pgCfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	sink, err := deadletter.NewPostgresSink(pool)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scheduler, err := queue.NewScheduler(registry,
//		queue.WithDeadLetterSink(sink),
//	)
//
// Export writes a sink's current entries to archive storage as a JSONL
// snapshot, for retention beyond the sink's own lifetime:
//
//	obj, err := deadletter.Export(ctx, sink, store, "payment-processing")
package deadletter
