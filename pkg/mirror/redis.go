package mirror

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stayforge/hotelops/pkg/queue"
)

// DefaultKeyPrefix namespaces mirror hashes in a shared Redis instance.
const DefaultKeyPrefix = "hotelops:pending"

// RedisMirror duplicates each queue's pending set into a Redis hash keyed by
// job ID, with the serialized job as the value. The hash lives at
// <prefix>:<queue>, so `HGETALL hotelops:pending:housekeeping` shows what is
// waiting without touching the scheduler process.
type RedisMirror struct {
	client *redis.Client
	prefix string
}

// RedisMirrorOption configures a RedisMirror.
type RedisMirrorOption func(*RedisMirror)

// WithKeyPrefix overrides the hash key prefix.
func WithKeyPrefix(prefix string) RedisMirrorOption {
	return func(m *RedisMirror) {
		if prefix != "" {
			m.prefix = prefix
		}
	}
}

// NewRedisMirror creates a mirror writing through the given client.
func NewRedisMirror(client *redis.Client, opts ...RedisMirrorOption) (*RedisMirror, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: nil redis client", ErrInvalidConfig)
	}

	m := &RedisMirror{client: client, prefix: DefaultKeyPrefix}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Key returns the Redis hash key holding a queue's pending set.
func (m *RedisMirror) Key(queueName string) string {
	return m.prefix + ":" + queueName
}

func (m *RedisMirror) Record(ctx context.Context, job queue.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return errors.Join(ErrFailedToRecordJob, err)
	}
	if err := m.client.HSet(ctx, m.Key(job.Queue), job.ID.String(), data).Err(); err != nil {
		return errors.Join(ErrFailedToRecordJob, err)
	}
	return nil
}

func (m *RedisMirror) Remove(ctx context.Context, queueName string, jobID uuid.UUID) error {
	if err := m.client.HDel(ctx, m.Key(queueName), jobID.String()).Err(); err != nil {
		return errors.Join(ErrFailedToRemoveJob, err)
	}
	return nil
}

func (m *RedisMirror) Clear(ctx context.Context, queueName string) error {
	if err := m.client.Del(ctx, m.Key(queueName)).Err(); err != nil {
		return errors.Join(ErrFailedToClearQueue, err)
	}
	return nil
}

// Pending returns the mirrored pending jobs of a queue, ordered the way the
// scheduler would serve them. The snapshot may trail the in-memory store by
// the few milliseconds it takes mirror writes to land.
func (m *RedisMirror) Pending(ctx context.Context, queueName string) ([]queue.Job, error) {
	fields, err := m.client.HGetAll(ctx, m.Key(queueName)).Result()
	if err != nil {
		return nil, errors.Join(ErrFailedToListPending, err)
	}

	jobs := make([]queue.Job, 0, len(fields))
	for _, raw := range fields {
		var job queue.Job
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			return nil, errors.Join(ErrFailedToListPending, err)
		}
		jobs = append(jobs, job)
	}

	slices.SortFunc(jobs, func(a, b queue.Job) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return a.ScheduledAt.Compare(b.ScheduledAt)
	})
	return jobs, nil
}

var _ queue.Mirror = (*RedisMirror)(nil)
