package opsapi

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/stayforge/hotelops/pkg/httpserver"
	"github.com/stayforge/hotelops/pkg/queue"
)

// API exposes a scheduler over HTTP: queue inspection, job submission,
// pause/resume/clear controls, dead letter browsing and a live event stream.
type API struct {
	scheduler *queue.Scheduler
	logger    *slog.Logger
	readiness []func(context.Context) error
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger used for request failures. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithReadinessChecks registers dependency probes served through /healthz.
// With no checks the endpoint acts as a plain liveness probe.
func WithReadinessChecks(checks ...func(context.Context) error) Option {
	return func(a *API) {
		a.readiness = append(a.readiness, checks...)
	}
}

// New creates an API around the given scheduler.
func New(scheduler *queue.Scheduler, opts ...Option) (*API, error) {
	if scheduler == nil {
		return nil, ErrSchedulerNil
	}

	a := &API{
		scheduler: scheduler,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Router mounts all endpoints and returns the handler, ready to be served:
//
//	GET    /healthz                   liveness/readiness probe
//	GET    /v1/queues                 all queue configs with stats
//	GET    /v1/queues/{queue}         one queue's config and stats
//	POST   /v1/queues/{queue}/jobs    submit a job
//	DELETE /v1/queues/{queue}/jobs    clear pending jobs
//	POST   /v1/queues/{queue}/pause   stop consuming
//	POST   /v1/queues/{queue}/resume  resume consuming
//	GET    /v1/dead-letters           browse dead letters
//	GET    /v1/events                 lifecycle events over SSE
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", httpserver.HealthCheckHandler(a.logger, a.readiness...))

	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/queues", a.listQueues)
		v1.Route("/queues/{queue}", func(q chi.Router) {
			q.Get("/", a.getQueue)
			q.Post("/jobs", a.submitJob)
			q.Delete("/jobs", a.clearQueue)
			q.Post("/pause", a.pauseQueue)
			q.Post("/resume", a.resumeQueue)
		})
		v1.Get("/dead-letters", a.listDeadLetters)
		v1.Get("/events", a.streamEvents)
	})

	return r
}
