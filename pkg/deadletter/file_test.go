package deadletter_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayforge/hotelops/pkg/deadletter"
	"github.com/stayforge/hotelops/pkg/queue"
)

func deadLetterFor(queueName, errMsg string, failedAt time.Time) queue.DeadLetter {
	return queue.DeadLetter{
		Job: queue.Job{
			ID:       uuid.New(),
			Queue:    queueName,
			Payload:  json.RawMessage(`{"room":"405"}`),
			Priority: queue.PriorityHigh,
			Status:   queue.StatusFailed,
			Attempts: 3,
		},
		Error:    errMsg,
		FailedAt: failedAt,
	}
}

func TestNewFileSink(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "dead.jsonl")
		sink, err := deadletter.NewFileSink(path)
		require.NoError(t, err)
		require.NotNil(t, sink)

		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects empty path", func(t *testing.T) {
		t.Parallel()

		sink, err := deadletter.NewFileSink("")
		assert.Nil(t, sink)
		assert.ErrorIs(t, err, deadletter.ErrFailedToCreateSink)
	})
}

func TestFileSink(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("round trips entries newest first", func(t *testing.T) {
		t.Parallel()

		sink, err := deadletter.NewFileSink(filepath.Join(t.TempDir(), "dead.jsonl"))
		require.NoError(t, err)

		first := deadLetterFor("housekeeping", "first", base)
		second := deadLetterFor("housekeeping", "second", base.Add(time.Minute))
		require.NoError(t, sink.Store(ctx, first))
		require.NoError(t, sink.Store(ctx, second))

		entries, err := sink.List(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "second", entries[0].Error)
		assert.Equal(t, "first", entries[1].Error)
		assert.Equal(t, first.Job.ID, entries[1].Job.ID)
		assert.JSONEq(t, `{"room":"405"}`, string(entries[0].Job.Payload))
		assert.True(t, entries[1].FailedAt.Equal(base))
	})

	t.Run("filters by queue and limit", func(t *testing.T) {
		t.Parallel()

		sink, err := deadletter.NewFileSink(filepath.Join(t.TempDir(), "dead.jsonl"))
		require.NoError(t, err)

		require.NoError(t, sink.Store(ctx, deadLetterFor("housekeeping", "a", base)))
		require.NoError(t, sink.Store(ctx, deadLetterFor("maintenance", "b", base.Add(time.Minute))))
		require.NoError(t, sink.Store(ctx, deadLetterFor("maintenance", "c", base.Add(2*time.Minute))))

		entries, err := sink.List(ctx, "maintenance", 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "c", entries[0].Error)
	})

	t.Run("missing file lists empty", func(t *testing.T) {
		t.Parallel()

		sink, err := deadletter.NewFileSink(filepath.Join(t.TempDir(), "never-written.jsonl"))
		require.NoError(t, err)

		entries, err := sink.List(ctx, "", 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("skips torn trailing line", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "dead.jsonl")
		sink, err := deadletter.NewFileSink(path)
		require.NoError(t, err)
		require.NoError(t, sink.Store(ctx, deadLetterFor("housekeeping", "intact", base)))

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
		require.NoError(t, err)
		_, err = f.WriteString(`{"job":{"id":"truncated`)
		require.NoError(t, err)
		require.NoError(t, f.Close())

		entries, err := sink.List(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "intact", entries[0].Error)
	})

	t.Run("appends across sink instances", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "dead.jsonl")

		sink1, err := deadletter.NewFileSink(path)
		require.NoError(t, err)
		require.NoError(t, sink1.Store(ctx, deadLetterFor("housekeeping", "from first", base)))

		sink2, err := deadletter.NewFileSink(path)
		require.NoError(t, err)
		require.NoError(t, sink2.Store(ctx, deadLetterFor("housekeeping", "from second", base.Add(time.Minute))))

		entries, err := sink2.List(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "from second", entries[0].Error)
		assert.Equal(t, "from first", entries[1].Error)
	})
}
