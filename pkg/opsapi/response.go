package opsapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stayforge/hotelops/pkg/queue"
)

// Response is the envelope every endpoint renders. Exactly one of Data and
// Error is set.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries a machine-readable code alongside the human-readable
// message.
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func (a *API) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response{Data: data}); err != nil {
		a.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classifyError(err)

	if status >= http.StatusInternalServerError {
		a.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	body := Response{Error: &ErrorDetail{Code: code, Message: err.Error()}}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Error("failed to encode error response", slog.String("error", err.Error()))
	}
}

// classifyError maps scheduler errors onto HTTP statuses and stable error
// codes clients can branch on.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, queue.ErrQueueNotFound):
		return http.StatusNotFound, "queue_not_found"
	case errors.Is(err, queue.ErrInvalidPriority):
		return http.StatusBadRequest, "invalid_priority"
	case errors.Is(err, queue.ErrPayloadNil), errors.Is(err, queue.ErrPayloadMarshal):
		return http.StatusBadRequest, "invalid_payload"
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, queue.ErrSchedulerClosed), errors.Is(err, queue.ErrStoreClosed):
		return http.StatusServiceUnavailable, "scheduler_stopped"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
