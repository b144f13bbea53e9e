// Package redis bootstraps the Redis layer: an environment-configured
// go-redis client with startup retries and a readiness probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// The scheduler's pending-job mirror is the main consumer; the client it
// gets here is named via REDIS_CLIENT_NAME so its connections are easy to
// spot in CLIENT LIST. Failures wrap ErrInvalidURL, ErrNotReady and
// ErrHealthcheck for errors.Is checks.
package redis
