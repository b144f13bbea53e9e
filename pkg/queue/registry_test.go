package queue_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayforge/hotelops/pkg/queue"
)

func TestQueueConfigValidate(t *testing.T) {
	t.Parallel()

	valid := queue.QueueConfig{
		Name:           "housekeeping",
		Priority:       queue.PriorityHigh,
		MaxConcurrent:  4,
		Timeout:        30 * time.Second,
		RetryAttempts:  3,
		RetryBaseDelay: time.Second,
	}

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, valid.Validate())
	})

	t.Run("invalid priority", func(t *testing.T) {
		t.Parallel()

		cfg := valid
		cfg.Priority = queue.Priority(9)
		assert.ErrorIs(t, cfg.Validate(), queue.ErrInvalidPriority)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		cfg := valid
		cfg.Name = ""
		assert.ErrorIs(t, cfg.Validate(), queue.ErrInvalidQueueName)
	})

	t.Run("zero concurrency", func(t *testing.T) {
		t.Parallel()

		cfg := valid
		cfg.MaxConcurrent = 0
		assert.ErrorIs(t, cfg.Validate(), queue.ErrInvalidConcurrency)
	})

	t.Run("zero timeout", func(t *testing.T) {
		t.Parallel()

		cfg := valid
		cfg.Timeout = 0
		assert.ErrorIs(t, cfg.Validate(), queue.ErrInvalidTimeout)
	})

	t.Run("negative retries", func(t *testing.T) {
		t.Parallel()

		cfg := valid
		cfg.RetryAttempts = -1
		assert.ErrorIs(t, cfg.Validate(), queue.ErrInvalidRetryAttempts)
	})

	t.Run("negative retry delay", func(t *testing.T) {
		t.Parallel()

		cfg := valid
		cfg.RetryBaseDelay = -time.Second
		assert.ErrorIs(t, cfg.Validate(), queue.ErrInvalidRetryDelay)
	})

	t.Run("zero retries allowed", func(t *testing.T) {
		t.Parallel()

		cfg := valid
		cfg.RetryAttempts = 0
		assert.NoError(t, cfg.Validate())
	})
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	t.Run("registers queues", func(t *testing.T) {
		t.Parallel()

		r, err := queue.NewRegistry(
			queue.DefaultQueueConfig("housekeeping"),
			queue.DefaultQueueConfig("maintenance"),
		)
		require.NoError(t, err)

		assert.Equal(t, 2, r.Len())
		assert.Equal(t, []string{"housekeeping", "maintenance"}, r.Names())

		cfg, ok := r.Get("housekeeping")
		require.True(t, ok)
		assert.Equal(t, queue.DefaultMaxConcurrent, cfg.MaxConcurrent)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		t.Parallel()

		_, err := queue.NewRegistry(
			queue.DefaultQueueConfig("housekeeping"),
			queue.DefaultQueueConfig("housekeeping"),
		)
		assert.ErrorIs(t, err, queue.ErrQueueExists)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		t.Parallel()

		_, err := queue.NewRegistry(queue.QueueConfig{Name: "bad"})
		assert.ErrorIs(t, err, queue.ErrInvalidConcurrency)
	})

	t.Run("unknown queue lookup", func(t *testing.T) {
		t.Parallel()

		r, err := queue.NewRegistry()
		require.NoError(t, err)

		_, ok := r.Get("missing")
		assert.False(t, ok)
	})
}

func TestParseRegistry(t *testing.T) {
	t.Parallel()

	t.Run("full document", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
queues:
  - name: housekeeping
    priority: high
    max_concurrent: 4
    timeout: 45s
    retry_attempts: 3
    retry_base_delay: 2s
`)
		r, err := queue.ParseRegistry(data)
		require.NoError(t, err)

		cfg, ok := r.Get("housekeeping")
		require.True(t, ok)
		assert.Equal(t, queue.PriorityHigh, cfg.Priority)
		assert.Equal(t, 4, cfg.MaxConcurrent)
		assert.Equal(t, 45*time.Second, cfg.Timeout)
		assert.Equal(t, 3, cfg.RetryAttempts)
		assert.Equal(t, 2*time.Second, cfg.RetryBaseDelay)
	})

	t.Run("defaults fill omitted fields", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
queues:
  - name: night-audit
`)
		r, err := queue.ParseRegistry(data)
		require.NoError(t, err)

		cfg, ok := r.Get("night-audit")
		require.True(t, ok)
		assert.Equal(t, queue.PriorityDefault, cfg.Priority)
		assert.Equal(t, queue.DefaultMaxConcurrent, cfg.MaxConcurrent)
		assert.Equal(t, queue.DefaultTimeout, cfg.Timeout)
		assert.Equal(t, queue.DefaultRetryAttempts, cfg.RetryAttempts)
		assert.Equal(t, queue.DefaultRetryBaseDelay, cfg.RetryBaseDelay)
	})

	t.Run("unknown priority name", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
queues:
  - name: broken
    priority: urgent
`)
		_, err := queue.ParseRegistry(data)
		assert.ErrorIs(t, err, queue.ErrInvalidPriority)
	})

	t.Run("explicit zero retries survives defaulting", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
queues:
  - name: one-shot
    retry_attempts: 0
`)
		r, err := queue.ParseRegistry(data)
		require.NoError(t, err)

		cfg, ok := r.Get("one-shot")
		require.True(t, ok)
		assert.Zero(t, cfg.RetryAttempts)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
queues:
  - name: broken
    timeout: soon
`)
		_, err := queue.ParseRegistry(data)
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := queue.ParseRegistry([]byte("queues: ["))
		assert.Error(t, err)
	})
}

func TestLoadRegistry(t *testing.T) {
	t.Parallel()

	t.Run("loads file", func(t *testing.T) {
		t.Parallel()

		r, err := queue.LoadRegistry(filepath.Join("testdata", "queues.yaml"))
		require.NoError(t, err)

		assert.Equal(t, []string{"guest-notifications", "housekeeping", "maintenance", "night-audit"}, r.Names())

		cfg, ok := r.Get("maintenance")
		require.True(t, ok)
		assert.Equal(t, queue.PriorityHigh, cfg.Priority)
		assert.Equal(t, 2, cfg.MaxConcurrent)
		assert.Equal(t, 2*time.Minute, cfg.Timeout)
		assert.Equal(t, 5, cfg.RetryAttempts)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := queue.LoadRegistry(filepath.Join("testdata", "missing.yaml"))
		assert.Error(t, err)
	})
}
