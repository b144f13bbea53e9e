// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Configuration structs declare their environment bindings via struct tags
// understood by github.com/caarlos0/env:
//
//	type SchedulerConfig struct {
//		QueuesFile   string        `env:"QUEUES_FILE" envDefault:"queues.yaml"`
//		EventBuffer  int           `env:"EVENT_BUFFER" envDefault:"64"`
//		DrainTimeout time.Duration `env:"DRAIN_TIMEOUT" envDefault:"30s"`
//	}
//
// Each struct type is parsed once per process and cached, so independent
// components loading the same type observe identical values:
//
//	var cfg SchedulerConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// MustLoad panics on failure and suits configuration the process cannot run
// without.
package config
