package logger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/stayforge/hotelops/pkg/logger"
)

func TestAttrs(t *testing.T) {
	t.Parallel()

	t.Run("error attr", func(t *testing.T) {
		t.Parallel()

		attr := logger.Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, "boom", attr.Value.String())
	})

	t.Run("nil error attr", func(t *testing.T) {
		t.Parallel()

		attr := logger.Error(nil)
		assert.Equal(t, "", attr.Value.String())
	})

	t.Run("job id attr", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		attr := logger.JobID(id)
		assert.Equal(t, "job_id", attr.Key)
		assert.Equal(t, id.String(), attr.Value.String())
	})

	t.Run("queue attr", func(t *testing.T) {
		t.Parallel()

		attr := logger.Queue("housekeeping")
		assert.Equal(t, "queue", attr.Key)
		assert.Equal(t, "housekeeping", attr.Value.String())
	})

	t.Run("attempt attr", func(t *testing.T) {
		t.Parallel()

		attr := logger.Attempt(3)
		assert.Equal(t, "attempt", attr.Key)
		assert.Equal(t, int64(3), attr.Value.Int64())
	})

	t.Run("duration attr", func(t *testing.T) {
		t.Parallel()

		attr := logger.Duration(2 * time.Second)
		assert.Equal(t, "duration", attr.Key)
		assert.Equal(t, 2*time.Second, attr.Value.Duration())
	})
}
