package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayforge/hotelops/pkg/queue"
)

func TestHandlerFunc(t *testing.T) {
	t.Parallel()

	want := errors.New("handler error")
	h := queue.HandlerFunc(func(ctx context.Context, job queue.Job) error {
		assert.Equal(t, "maintenance", job.Queue)
		return want
	})

	err := h.Handle(context.Background(), queue.Job{Queue: "maintenance"})
	assert.ErrorIs(t, err, want)
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	type workOrder struct {
		Room  string `json:"room"`
		Issue string `json:"issue"`
	}

	t.Run("decodes payload", func(t *testing.T) {
		t.Parallel()

		var got workOrder
		h := queue.NewHandler(func(ctx context.Context, order workOrder) error {
			got = order
			return nil
		})

		job := queue.Job{Payload: json.RawMessage(`{"room":"1204","issue":"leaking faucet"}`)}
		require.NoError(t, h.Handle(context.Background(), job))
		assert.Equal(t, workOrder{Room: "1204", Issue: "leaking faucet"}, got)
	})

	t.Run("empty payload yields zero value", func(t *testing.T) {
		t.Parallel()

		called := false
		h := queue.NewHandler(func(ctx context.Context, order workOrder) error {
			called = true
			assert.Zero(t, order)
			return nil
		})

		require.NoError(t, h.Handle(context.Background(), queue.Job{}))
		assert.True(t, called)
	})

	t.Run("malformed payload fails without invoking handler", func(t *testing.T) {
		t.Parallel()

		called := false
		h := queue.NewHandler(func(ctx context.Context, order workOrder) error {
			called = true
			return nil
		})

		job := queue.Job{Payload: json.RawMessage(`{"room":`)}
		err := h.Handle(context.Background(), job)
		assert.ErrorIs(t, err, queue.ErrPayloadDecode)
		assert.False(t, called)
	})

	t.Run("handler error propagates", func(t *testing.T) {
		t.Parallel()

		want := errors.New("parts on back order")
		h := queue.NewHandler(func(ctx context.Context, order workOrder) error {
			return want
		})

		job := queue.Job{Payload: json.RawMessage(`{"room":"0815"}`)}
		assert.ErrorIs(t, h.Handle(context.Background(), job), want)
	})
}
