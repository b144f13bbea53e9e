package queue

import "time"

// EventType identifies a lifecycle event.
type EventType string

const (
	EventJobAdded     EventType = "job:added"
	EventJobStarted   EventType = "job:started"
	EventJobCompleted EventType = "job:completed"
	EventJobRetrying  EventType = "job:retry"
	EventJobFailed    EventType = "job:failed"

	EventQueuePaused  EventType = "queue:paused"
	EventQueueResumed EventType = "queue:resumed"
	EventQueueCleared EventType = "queue:cleared"
)

// Event describes a single lifecycle transition. Every event carries a
// stats snapshot taken after the transition, so observers can render queue
// state without issuing a separate stats call.
type Event struct {
	Type  EventType `json:"type"`
	Queue string    `json:"queue"`
	Job   *Job      `json:"job,omitempty"`
	Error string    `json:"error,omitempty"`
	Stats Stats     `json:"stats"`
	At    time.Time `json:"at"`
}
