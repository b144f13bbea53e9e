package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayforge/hotelops/pkg/opsapi"
	"github.com/stayforge/hotelops/pkg/queue"
)

func TestAPIClient(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("decodes data envelope", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/queues", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(opsapi.Response{Data: []opsapi.QueueStatus{
				{
					Config: queue.QueueConfig{Name: "housekeeping", MaxConcurrent: 4},
					Stats:  queue.Stats{Queue: "housekeeping", Pending: 7},
				},
			}})
		}))
		defer srv.Close()

		statuses, err := newAPIClient(srv.URL).listQueues(ctx)
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Equal(t, "housekeeping", statuses[0].Config.Name)
		assert.Equal(t, 7, statuses[0].Stats.Pending)
	})

	t.Run("surfaces error envelope", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(opsapi.Response{Error: &opsapi.ErrorDetail{
				Code:    "queue_not_found",
				Message: "queue not found in registry: \"froomba\"",
			}})
		}))
		defer srv.Close()

		_, err := newAPIClient(srv.URL).getQueue(ctx, "froomba")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "queue_not_found")
		assert.Contains(t, err.Error(), "froomba")
	})

	t.Run("submits job body", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/queues/housekeeping/jobs", r.URL.Path)

			var req opsapi.SubmitJobRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.JSONEq(t, `{"room":"405"}`, string(req.Payload))
			assert.Equal(t, "critical", req.Priority)
			assert.Equal(t, map[string]string{"requested_by": "front-desk"}, req.Metadata)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(opsapi.Response{Data: opsapi.SubmitJobResponse{ID: id, Queue: "housekeeping"}})
		}))
		defer srv.Close()

		resp, err := newAPIClient(srv.URL).submitJob(ctx, "housekeeping", opsapi.SubmitJobRequest{
			Payload:  json.RawMessage(`{"room":"405"}`),
			Priority: "critical",
			Metadata: map[string]string{"requested_by": "front-desk"},
		})
		require.NoError(t, err)
		assert.Equal(t, id, resp.ID)
		assert.Equal(t, "housekeeping", resp.Queue)
	})

	t.Run("builds dead letter query", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/dead-letters", r.URL.Path)
			assert.Equal(t, "notifications", r.URL.Query().Get("queue"))
			assert.Equal(t, "5", r.URL.Query().Get("limit"))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(opsapi.Response{Data: []queue.DeadLetter{}})
		}))
		defer srv.Close()

		entries, err := newAPIClient(srv.URL).deadLetters(ctx, "notifications", 5)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("watch parses event frames", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			w.WriteHeader(http.StatusOK)

			event := queue.Event{Type: queue.EventJobCompleted, Queue: "housekeeping", At: time.Now()}
			data, err := json.Marshal(event)
			require.NoError(t, err)
			w.Write([]byte("event: " + string(event.Type) + "\n"))
			w.Write([]byte("data: " + string(data) + "\n\n"))
		}))
		defer srv.Close()

		var got []queue.Event
		err := newAPIClient(srv.URL).watchEvents(ctx, func(e queue.Event) {
			got = append(got, e)
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, queue.EventJobCompleted, got[0].Type)
		assert.Equal(t, "housekeeping", got[0].Queue)
	})
}

func TestParseMeta(t *testing.T) {
	t.Parallel()

	t.Run("valid pairs", func(t *testing.T) {
		t.Parallel()

		meta, err := parseMeta([]string{"requested_by=front-desk", "room=405"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"requested_by": "front-desk", "room": "405"}, meta)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		meta, err := parseMeta(nil)
		require.NoError(t, err)
		assert.Nil(t, meta)
	})

	t.Run("missing separator", func(t *testing.T) {
		t.Parallel()

		_, err := parseMeta([]string{"nope"})
		assert.Error(t, err)
	})
}
