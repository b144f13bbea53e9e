package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayforge/hotelops/pkg/queue"
)

func TestJobFromContext(t *testing.T) {
	t.Parallel()

	t.Run("inside a handler", func(t *testing.T) {
		t.Parallel()

		s := newScheduler(t, quickConfig("housekeeping"))

		seen := make(chan queue.JobContext, 1)
		require.NoError(t, s.RegisterHandler("housekeeping", queue.HandlerFunc(
			func(ctx context.Context, job queue.Job) error {
				jc, ok := queue.JobFromContext(ctx)
				require.True(t, ok)
				seen <- jc
				return nil
			},
		)))
		require.NoError(t, s.Start(context.Background()))

		id, err := s.AddJob(context.Background(), "housekeeping", map[string]string{"room": "1204"})
		require.NoError(t, err)

		select {
		case jc := <-seen:
			assert.Equal(t, id, jc.ID)
			assert.Equal(t, "housekeeping", jc.Queue)
			assert.Equal(t, 1, jc.Attempt)
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not run")
		}
	})

	t.Run("plain context", func(t *testing.T) {
		t.Parallel()

		_, ok := queue.JobFromContext(context.Background())
		assert.False(t, ok)
	})
}

func TestJobLogAttrs(t *testing.T) {
	t.Parallel()

	t.Run("outside execution", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, queue.JobLogAttrs(context.Background()))
	})

	t.Run("inside a handler", func(t *testing.T) {
		t.Parallel()

		s := newScheduler(t, quickConfig("maintenance"))

		keys := make(chan []string, 1)
		require.NoError(t, s.RegisterHandler("maintenance", queue.HandlerFunc(
			func(ctx context.Context, job queue.Job) error {
				var got []string
				for _, attr := range queue.JobLogAttrs(ctx) {
					got = append(got, attr.Key)
				}
				keys <- got
				return nil
			},
		)))
		require.NoError(t, s.Start(context.Background()))

		_, err := s.AddJob(context.Background(), "maintenance", map[string]string{"room": "318"})
		require.NoError(t, err)

		select {
		case got := <-keys:
			assert.Equal(t, []string{"job_id", "queue", "attempt"}, got)
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not run")
		}
	})
}
