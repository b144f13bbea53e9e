package httpserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/stayforge/hotelops/pkg/logger"
)

// HealthCheckHandler serves liveness and readiness from a single endpoint.
// With no checks it is a pure liveness probe and always answers 200 "ALIVE".
// With checks it runs each one against the request context and answers
// 200 "READY" when all pass, or 503 "NOT_READY" as soon as one fails, so a
// probe with a deadline can never wedge the endpoint.
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			_, _ = io.WriteString(w, "ALIVE")
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = io.WriteString(w, "NOT_READY")
				return
			}
		}

		_, _ = io.WriteString(w, "READY")
	}
}
