package queue

import "time"

// Config carries scheduler settings resolvable from the environment, for
// services that wire the scheduler through pkg/config.
type Config struct {
	// QueuesFile is the path of the YAML queue registry.
	QueuesFile string `env:"QUEUES_FILE" envDefault:"queues.yaml"`

	// EventBufferSize is the per-subscriber event buffer.
	EventBufferSize int `env:"QUEUE_EVENT_BUFFER" envDefault:"64"`

	// RecurringInterval is how often recurring schedules are checked.
	RecurringInterval time.Duration `env:"QUEUE_RECURRING_INTERVAL" envDefault:"30s"`

	// DeadLetterCapacity bounds the in-memory dead letter sink used when no
	// external sink is configured.
	DeadLetterCapacity int `env:"QUEUE_DEAD_LETTER_CAPACITY" envDefault:"1000"`
}
