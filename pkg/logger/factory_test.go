package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayforge/hotelops/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("default json format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Info("hello")

		record := decodeLine(t, &buf)
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "INFO", record["level"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithFormat(logger.FormatText),
		)
		log.Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithLevel(slog.LevelWarn),
		)
		log.Info("dropped")
		assert.Zero(t, buf.Len())

		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "hotelops")),
		)
		log.Info("hello")

		record := decodeLine(t, &buf)
		assert.Equal(t, "hotelops", record["service"])
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})

	t.Run("nil output ignored", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() {
			log := logger.New(logger.WithOutput(nil))
			_ = log
		})
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("debug level honored", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewFromConfig(
			logger.Config{Level: "debug", Format: logger.FormatJSON},
			logger.WithOutput(&buf),
		)
		log.Debug("visible")

		record := decodeLine(t, &buf)
		assert.Equal(t, "DEBUG", record["level"])
	})

	t.Run("service attributes attached", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewFromConfig(
			logger.Config{Level: "info", Service: "opsserver", Env: "production"},
			logger.WithOutput(&buf),
		)
		log.Info("hello")

		record := decodeLine(t, &buf)
		assert.Equal(t, "opsserver", record["service"])
		assert.Equal(t, "production", record["env"])
	})
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(func(ctx context.Context) []slog.Attr {
			if v, ok := ctx.Value(ctxKey{}).(string); ok {
				return []slog.Attr{slog.String("job_id", v)}
			}
			return nil
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "job-42")
	log.InfoContext(ctx, "processing")

	record := decodeLine(t, &buf)
	assert.Equal(t, "job-42", record["job_id"])
}
