package redis

import "time"

// Config carries client settings read from the environment.
type Config struct {
	// URL takes the usual form redis://[:password@]host:port/db.
	URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// ClientName is reported to CLIENT LIST, which helps attribute
	// connections when several services share one Redis.
	ClientName string `env:"REDIS_CLIENT_NAME" envDefault:"hotelops"`

	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"5"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
}
