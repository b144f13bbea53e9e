package httpserver

import "time"

// Config carries listener settings read from the environment. The zero
// write timeout is deliberate: the operations API streams lifecycle events
// over long-lived responses, and a write deadline would sever them.
type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"0s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// NewFromConfig builds a Server from cfg. Zero config values keep the
// package defaults; extra options are applied on top and win on conflict.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	resolved := make([]Option, 0, 6+len(opts))

	if cfg.Addr != "" {
		resolved = append(resolved, WithAddr(cfg.Addr))
	}
	if cfg.ReadTimeout > 0 {
		resolved = append(resolved, WithReadTimeout(cfg.ReadTimeout))
	}
	if cfg.ReadHeaderTimeout > 0 {
		resolved = append(resolved, WithReadHeaderTimeout(cfg.ReadHeaderTimeout))
	}
	if cfg.WriteTimeout > 0 {
		resolved = append(resolved, WithWriteTimeout(cfg.WriteTimeout))
	}
	if cfg.IdleTimeout > 0 {
		resolved = append(resolved, WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout > 0 {
		resolved = append(resolved, WithShutdownTimeout(cfg.ShutdownTimeout))
	}

	return New(append(resolved, opts...)...)
}
