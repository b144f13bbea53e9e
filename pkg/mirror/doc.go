// Package mirror exposes the scheduler's pending queues to external
// observers through Redis.
//
// The in-memory priority store stays authoritative; RedisMirror merely
// shadows it so dashboards and the ops CLI can inspect what is waiting
// without an API round trip to the scheduler. Mirror write failures are
// logged by the scheduler and never affect job processing.
//
//	client, err := redis.Connect(ctx, redisCfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	m, err := mirror.NewRedisMirror(client)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scheduler, err := queue.NewScheduler(registry, queue.WithMirror(m))
package mirror
