package queue

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Default limits applied when a queue config omits a field.
const (
	DefaultMaxConcurrent  = 5
	DefaultTimeout        = 30 * time.Second
	DefaultRetryAttempts  = 3
	DefaultRetryBaseDelay = time.Second
)

// QueueConfig describes the priority class and processing limits of a
// single named queue.
type QueueConfig struct {
	// Name identifies the queue. Jobs are always added to exactly one
	// named queue.
	Name string `json:"name" yaml:"name"`

	// Priority is the default priority class of jobs added to this queue.
	// Individual jobs may override it.
	Priority Priority `json:"priority" yaml:"priority"`

	// MaxConcurrent bounds how many jobs the queue processes at once.
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`

	// Timeout bounds a single job execution. Jobs may override it.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// RetryAttempts is the maximum number of executions a job gets before
	// it is dead-lettered. Values below 1 mean a single attempt with no
	// retries. Jobs may override it.
	RetryAttempts int `json:"retry_attempts" yaml:"retry_attempts"`

	// RetryBaseDelay seeds the exponential backoff between retries: the
	// k-th retry waits RetryBaseDelay * 2^(k-1).
	RetryBaseDelay time.Duration `json:"retry_base_delay" yaml:"retry_base_delay"`
}

// DefaultQueueConfig returns a config for name with all limits set to the
// package defaults.
func DefaultQueueConfig(name string) QueueConfig {
	return QueueConfig{
		Name:           name,
		Priority:       PriorityDefault,
		MaxConcurrent:  DefaultMaxConcurrent,
		Timeout:        DefaultTimeout,
		RetryAttempts:  DefaultRetryAttempts,
		RetryBaseDelay: DefaultRetryBaseDelay,
	}
}

// Validate checks the config limits.
func (c QueueConfig) Validate() error {
	if c.Name == "" {
		return ErrInvalidQueueName
	}
	if !c.Priority.Valid() {
		return fmt.Errorf("queue %q: %w", c.Name, ErrInvalidPriority)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("queue %q: %w", c.Name, ErrInvalidConcurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("queue %q: %w", c.Name, ErrInvalidTimeout)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("queue %q: %w", c.Name, ErrInvalidRetryAttempts)
	}
	if c.RetryBaseDelay < 0 {
		return fmt.Errorf("queue %q: %w", c.Name, ErrInvalidRetryDelay)
	}
	return nil
}

// UnmarshalYAML decodes a queue config, accepting durations in Go notation
// ("30s", "1m30s"), priorities by name and filling omitted fields with
// package defaults.
func (c *QueueConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name           string `yaml:"name"`
		Priority       string `yaml:"priority"`
		MaxConcurrent  *int   `yaml:"max_concurrent"`
		Timeout        string `yaml:"timeout"`
		RetryAttempts  *int   `yaml:"retry_attempts"`
		RetryBaseDelay string `yaml:"retry_base_delay"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	cfg := DefaultQueueConfig(raw.Name)

	if raw.Priority != "" {
		p, err := ParsePriority(raw.Priority)
		if err != nil {
			return fmt.Errorf("queue %q: %w", raw.Name, err)
		}
		cfg.Priority = p
	}
	if raw.MaxConcurrent != nil {
		cfg.MaxConcurrent = *raw.MaxConcurrent
	}
	if raw.RetryAttempts != nil {
		cfg.RetryAttempts = *raw.RetryAttempts
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("queue %q: invalid timeout: %w", raw.Name, err)
		}
		cfg.Timeout = d
	}
	if raw.RetryBaseDelay != "" {
		d, err := time.ParseDuration(raw.RetryBaseDelay)
		if err != nil {
			return fmt.Errorf("queue %q: invalid retry_base_delay: %w", raw.Name, err)
		}
		cfg.RetryBaseDelay = d
	}

	*c = cfg
	return nil
}

// Registry holds the set of known queues. The scheduler only accepts jobs
// for queues present in its registry.
type Registry struct {
	mu     sync.RWMutex
	queues map[string]QueueConfig
}

// NewRegistry creates a registry from the given configs. Every config is
// validated and names must be unique.
func NewRegistry(configs ...QueueConfig) (*Registry, error) {
	r := &Registry{queues: make(map[string]QueueConfig, len(configs))}
	for _, cfg := range configs {
		if err := r.Add(cfg); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ParseRegistry builds a registry from a YAML document of the form:
//
//	queues:
//	  - name: housekeeping
//	    priority: high
//	    max_concurrent: 4
//	    timeout: 45s
//	    retry_attempts: 3
//	    retry_base_delay: 2s
func ParseRegistry(data []byte) (*Registry, error) {
	var doc struct {
		Queues []QueueConfig `yaml:"queues"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse queue registry: %w", err)
	}
	return NewRegistry(doc.Queues...)
}

// LoadRegistry reads a YAML registry file from path.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read queue registry %q: %w", path, err)
	}
	return ParseRegistry(data)
}

// Add registers a queue config.
func (r *Registry) Add(cfg QueueConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.queues[cfg.Name]; exists {
		return errors.Join(ErrQueueExists, fmt.Errorf("queue %q", cfg.Name))
	}
	r.queues[cfg.Name] = cfg
	return nil
}

// Get returns the config for a queue name.
func (r *Registry) Get(name string) (QueueConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.queues[name]
	return cfg, ok
}

// Names returns all registered queue names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.queues))
	for name := range r.queues {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Configs returns all queue configs ordered by name.
func (r *Registry) Configs() []QueueConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	configs := make([]QueueConfig, 0, len(r.queues))
	for _, cfg := range r.queues {
		configs = append(configs, cfg)
	}
	slices.SortFunc(configs, func(a, b QueueConfig) int {
		return strings.Compare(a.Name, b.Name)
	})
	return configs
}

// Len returns the number of registered queues.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.queues)
}
