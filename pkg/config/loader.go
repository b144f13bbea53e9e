package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)
)

// Load populates the configuration struct from environment variables based
// on its field tags. Each distinct struct type is parsed at most once per
// process; later calls for the same type return the cached copy so all
// components observe identical settings.
//
// A .env file in the working directory is loaded into the environment the
// first time any configuration is requested. A missing file is not an error.
//
// Example:
//
//	type WorkerConfig struct {
//		QueuesFile string `env:"QUEUES_FILE" envDefault:"queues.yaml"`
//		Shutdown   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg WorkerConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		// The .env file is optional; absence is the common production case.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*v)

	cacheMu.RLock()
	cached, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	// Another goroutine may have parsed the same type while we waited.
	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	cache[key] = *v
	return nil
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
