// Package opsapi serves the scheduler's operational surface over HTTP.
//
// The API is read-mostly: staff dashboards and the opsctl CLI use it to
// inspect queues, submit ad-hoc jobs, pause or clear misbehaving queues and
// browse dead letters. It does not replace in-process job submission;
// services owning a scheduler call AddJob directly.
//
// Every JSON endpoint wraps its payload in a Response envelope with either
// a data or an error field:
//
//	{"data": {"id": "7d8e...", "queue": "housekeeping"}}
//	{"error": {"code": "queue_not_found", "message": "queue not found in registry: \"froomba\""}}
//
// # Usage
//
//	api, err := opsapi.New(scheduler,
//		opsapi.WithLogger(logger),
//		opsapi.WithReadinessChecks(pg.Healthcheck(pool)),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	srv := httpserver.New(httpserver.WithAddr(":8080"))
//	if err := srv.Run(ctx, api.Router()); err != nil {
//		log.Fatal(err)
//	}
//
// GET /v1/events streams lifecycle events as server-sent events. Each frame
// carries the event type in the SSE event field and the serialized event,
// including a post-transition stats snapshot, in the data field.
package opsapi
