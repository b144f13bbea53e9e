package opsapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// streamEvents pushes scheduler lifecycle events to the client as
// server-sent events, one frame per event, until the client disconnects or
// the scheduler stops. Slow clients lose events rather than slowing the
// scheduler; dashboards should treat the stream as advisory and reconcile
// from /v1/queues.
func (a *API) streamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		a.respondError(w, r, ErrStreamUnsupported)
		return
	}

	events := a.scheduler.Events(r.Context())

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				a.logger.Error("failed to marshal event",
					slog.String("type", string(event.Type)),
					slog.String("error", err.Error()))
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			flusher.Flush()
		}
	}
}
