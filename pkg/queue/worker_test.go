package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	t.Parallel()

	base := 2 * time.Second

	tests := []struct {
		name     string
		attempts int
		want     time.Duration
	}{
		{"first failure", 1, 2 * time.Second},
		{"second failure", 2, 4 * time.Second},
		{"third failure", 3, 8 * time.Second},
		{"fourth failure", 4, 16 * time.Second},
		{"zero attempts treated as first", 0, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, backoff(base, tt.attempts))
		})
	}

	t.Run("zero base disables backoff", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, backoff(0, 5))
	})

	t.Run("growth is capped", func(t *testing.T) {
		t.Parallel()

		capped := backoff(time.Second, maxBackoffShift+1)
		assert.Equal(t, backoff(time.Second, maxBackoffShift+100), capped)
		assert.Positive(t, capped)
	})
}
