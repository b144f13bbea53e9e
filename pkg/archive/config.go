package archive

import (
	"context"
	"fmt"
)

// Backend selects the storage implementation.
type Backend string

const (
	BackendLocal Backend = "local"
	BackendS3    Backend = "s3"
)

// Config holds archive storage settings resolvable from the environment.
type Config struct {
	Backend Backend `env:"ARCHIVE_BACKEND" envDefault:"local"`

	// Local backend
	LocalDir     string `env:"ARCHIVE_LOCAL_DIR" envDefault:"./archives"`
	LocalBaseURL string `env:"ARCHIVE_LOCAL_BASE_URL" envDefault:"/archives/"`

	// S3 backend
	S3Bucket         string `env:"ARCHIVE_S3_BUCKET"`
	S3Region         string `env:"ARCHIVE_S3_REGION"`
	S3AccessKeyID    string `env:"ARCHIVE_S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"ARCHIVE_S3_SECRET_KEY"`
	S3Endpoint       string `env:"ARCHIVE_S3_ENDPOINT"`         // Optional: for S3-compatible services
	S3BaseURL        string `env:"ARCHIVE_S3_BASE_URL"`         // Public URL base for serving objects
	S3ForcePathStyle bool   `env:"ARCHIVE_S3_FORCE_PATH_STYLE"` // For S3-compatible services like MinIO
}

// New creates a Storage from environment-driven configuration.
func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Backend {
	case BackendLocal:
		return NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL)
	case BackendS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			BaseURL:        cfg.S3BaseURL,
			ForcePathStyle: cfg.S3ForcePathStyle,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
