package queue

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority orders jobs within a queue. Lower values dequeue first.
// Using int8 keeps the footprint minimal while covering the four levels.
type Priority int8

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow

	// PriorityDefault is applied when a job is added without an explicit
	// priority.
	PriorityDefault = PriorityMedium
)

// Valid reports whether the priority is one of the defined levels.
func (p Priority) Valid() bool {
	return p >= PriorityCritical && p <= PriorityLow
}

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// ParsePriority converts a level name into a Priority. Matching is
// case-insensitive.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return PriorityCritical, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return PriorityDefault, ErrInvalidPriority
	}
}

// MarshalText renders the priority as its level name, so JSON and YAML
// documents carry "critical" rather than a bare number.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, ErrInvalidPriority
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Status represents the lifecycle state of a job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusRetrying   Status = "retrying"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job is a unit of work bound to a named queue.
type Job struct {
	ID          uuid.UUID         `json:"id"`
	Queue       string            `json:"queue"`
	Payload     json.RawMessage   `json:"payload,omitempty"`
	Priority    Priority          `json:"priority"`
	Status      Status            `json:"status"`
	Attempts    int               `json:"attempts"`
	MaxAttempts int               `json:"max_attempts"`
	Timeout     time.Duration     `json:"timeout,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	LastError   string            `json:"last_error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	ScheduledAt time.Time         `json:"scheduled_at"`
}
