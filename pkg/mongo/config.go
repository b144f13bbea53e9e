package mongo

import "time"

// Config carries client settings read from the environment.
type Config struct {
	URI      string `env:"MONGODB_URI,required"`
	Database string `env:"MONGODB_DATABASE" envDefault:"hotelops"`

	// AppName shows up in the server logs and in currentOp output, which
	// makes it easy to attribute load to this service.
	AppName string `env:"MONGODB_APP_NAME" envDefault:"hotelops"`

	ConnectTimeout   time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	SelectionTimeout time.Duration `env:"MONGODB_SELECTION_TIMEOUT" envDefault:"10s"`
	MaxPoolSize      uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"50"`
	MinPoolSize      uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime  time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	RetryWrites      bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`
	RetryReads       bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`

	RetryAttempts int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"5"`
	RetryInterval time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"2s"`
}
