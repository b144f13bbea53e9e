package opsapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayforge/hotelops/pkg/queue"
)

// QueueStatus pairs a queue's configuration with its live counters.
type QueueStatus struct {
	Config queue.QueueConfig `json:"config"`
	Stats  queue.Stats       `json:"stats"`
}

// SubmitJobRequest is the body of POST /v1/queues/{queue}/jobs. Durations
// use Go notation ("30s", "1m30s"); priority uses level names. Omitted
// fields fall back to the queue's configuration.
type SubmitJobRequest struct {
	Payload     json.RawMessage   `json:"payload"`
	Priority    string            `json:"priority,omitempty"`
	Delay       string            `json:"delay,omitempty"`
	RunAt       *time.Time        `json:"run_at,omitempty"`
	MaxAttempts int               `json:"max_attempts,omitempty"`
	Timeout     string            `json:"timeout,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// SubmitJobResponse acknowledges an accepted job.
type SubmitJobResponse struct {
	ID    uuid.UUID `json:"id"`
	Queue string    `json:"queue"`
}

// ClearQueueResponse reports how many pending jobs a clear removed.
type ClearQueueResponse struct {
	Removed int `json:"removed"`
}

func (req SubmitJobRequest) options() ([]queue.JobOption, error) {
	var opts []queue.JobOption

	if req.Priority != "" {
		p, err := queue.ParsePriority(req.Priority)
		if err != nil {
			return nil, err
		}
		opts = append(opts, queue.WithPriority(p))
	}
	if req.Delay != "" {
		d, err := time.ParseDuration(req.Delay)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid delay: %v", ErrInvalidRequest, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("%w: delay cannot be negative", ErrInvalidRequest)
		}
		opts = append(opts, queue.WithDelay(d))
	}
	if req.RunAt != nil {
		opts = append(opts, queue.WithRunAt(*req.RunAt))
	}
	if req.MaxAttempts > 0 {
		opts = append(opts, queue.WithMaxAttempts(req.MaxAttempts))
	}
	if req.Timeout != "" {
		d, err := time.ParseDuration(req.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timeout: %v", ErrInvalidRequest, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%w: timeout must be positive", ErrInvalidRequest)
		}
		opts = append(opts, queue.WithJobTimeout(d))
	}
	for k, v := range req.Metadata {
		opts = append(opts, queue.WithMetadata(k, v))
	}

	return opts, nil
}

func (a *API) listQueues(w http.ResponseWriter, r *http.Request) {
	configs := a.scheduler.Queues()

	statuses := make([]QueueStatus, 0, len(configs))
	for _, cfg := range configs {
		stats, err := a.scheduler.Stats(cfg.Name)
		if err != nil {
			continue
		}
		statuses = append(statuses, QueueStatus{Config: cfg, Stats: stats})
	}

	a.respond(w, http.StatusOK, statuses)
}

func (a *API) getQueue(w http.ResponseWriter, r *http.Request) {
	status, err := a.queueStatus(chi.URLParam(r, "queue"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, status)
}

func (a *API) submitJob(w http.ResponseWriter, r *http.Request) {
	queueName := chi.URLParam(r, "queue")

	var req SubmitJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, r, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}
	if len(req.Payload) == 0 || string(req.Payload) == "null" {
		a.respondError(w, r, queue.ErrPayloadNil)
		return
	}

	opts, err := req.options()
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	id, err := a.scheduler.AddJob(r.Context(), queueName, req.Payload, opts...)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	a.respond(w, http.StatusAccepted, SubmitJobResponse{ID: id, Queue: queueName})
}

func (a *API) clearQueue(w http.ResponseWriter, r *http.Request) {
	removed, err := a.scheduler.ClearQueue(r.Context(), chi.URLParam(r, "queue"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, ClearQueueResponse{Removed: removed})
}

func (a *API) pauseQueue(w http.ResponseWriter, r *http.Request) {
	queueName := chi.URLParam(r, "queue")

	if err := a.scheduler.PauseQueue(queueName); err != nil {
		a.respondError(w, r, err)
		return
	}

	status, err := a.queueStatus(queueName)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, status)
}

func (a *API) resumeQueue(w http.ResponseWriter, r *http.Request) {
	queueName := chi.URLParam(r, "queue")

	if err := a.scheduler.ResumeQueue(queueName); err != nil {
		a.respondError(w, r, err)
		return
	}

	status, err := a.queueStatus(queueName)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, status)
}

func (a *API) listDeadLetters(w http.ResponseWriter, r *http.Request) {
	queueName := r.URL.Query().Get("queue")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			a.respondError(w, r, fmt.Errorf("%w: limit must be a non-negative integer", ErrInvalidRequest))
			return
		}
		limit = n
	}

	entries, err := a.scheduler.DeadLetters(r.Context(), queueName, limit)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if entries == nil {
		entries = []queue.DeadLetter{}
	}
	a.respond(w, http.StatusOK, entries)
}

func (a *API) queueStatus(queueName string) (QueueStatus, error) {
	stats, err := a.scheduler.Stats(queueName)
	if err != nil {
		return QueueStatus{}, err
	}
	for _, cfg := range a.scheduler.Queues() {
		if cfg.Name == queueName {
			return QueueStatus{Config: cfg, Stats: stats}, nil
		}
	}
	return QueueStatus{}, fmt.Errorf("%w: %q", queue.ErrQueueNotFound, queueName)
}
