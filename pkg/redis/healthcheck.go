package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Healthcheck adapts a ping to the func(context.Context) error shape the
// readiness endpoint consumes. It accepts any go-redis client flavor.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrHealthcheck, err)
		}
		return nil
	}
}
