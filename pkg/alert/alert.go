package alert

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Alert describes an operational incident requiring operator attention.
type Alert struct {
	Subject string            `json:"subject"`          // One-line incident summary
	Message string            `json:"message"`          // Details, plain text
	Tag     string            `json:"tag,omitempty"`    // Routing/grouping hint, e.g. "dead-letter"
	Fields  map[string]string `json:"fields,omitempty"` // Structured context (queue, job_id, ...)
	At      time.Time         `json:"at"`
}

// Alerter delivers alerts to an administrative channel. Implementations
// must be safe for concurrent use. Delivery is best-effort: failures are
// the caller's to log.
type Alerter interface {
	Send(ctx context.Context, a Alert) error
}

// Validate checks that the alert carries the minimum deliverable content.
func (a Alert) Validate() error {
	if strings.TrimSpace(a.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidAlert)
	}
	return nil
}

// sortedFieldKeys returns the alert's field names in stable order, so
// rendered output does not shuffle between deliveries.
func (a Alert) sortedFieldKeys() []string {
	keys := make([]string, 0, len(a.Fields))
	for k := range a.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
