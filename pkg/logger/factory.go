package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format selects the handler encoding.
type Format string

const (
	// FormatJSON emits one JSON object per record, for log aggregation.
	FormatJSON Format = "json"
	// FormatText emits logfmt-style lines, for terminals.
	FormatText Format = "text"
)

// Config carries logger settings read from the environment.
type Config struct {
	Level     string `env:"LOG_LEVEL" envDefault:"info"` // debug, info, warn, error
	Format    Format `env:"LOG_FORMAT" envDefault:"json"`
	AddSource bool   `env:"LOG_SOURCE" envDefault:"false"`
	Service   string `env:"LOG_SERVICE"`
	Env       string `env:"APP_ENV" envDefault:"production"`
}

type settings struct {
	level      slog.Level
	format     Format
	addSource  bool
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// Option adjusts how the logger is assembled.
type Option func(*settings)

// WithLevel sets the minimum level that produces output.
func WithLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithFormat selects the record encoding. Unknown formats panic so a
// misconfigured service refuses to start instead of logging unreadably.
func WithFormat(format Format) Option {
	if format != FormatJSON && format != FormatText {
		panic(fmt.Sprintf("logger: unknown format %q, want %q or %q", format, FormatJSON, FormatText))
	}
	return func(s *settings) { s.format = format }
}

// WithSource annotates every record with the file:line of the call site.
func WithSource() Option {
	return func(s *settings) { s.addSource = true }
}

// WithOutput redirects records to w. A nil writer keeps the current
// destination.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithAttr attaches static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) { s.attrs = append(s.attrs, attrs...) }
}

// WithContextExtractors registers functions that pull attributes out of the
// context on every record. Nil extractors are dropped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) {
		for _, ex := range extractors {
			if ex != nil {
				s.extractors = append(s.extractors, ex)
			}
		}
	}
}

// New builds a slog.Logger writing JSON to stdout at info level unless
// options say otherwise.
func New(opts ...Option) *slog.Logger {
	s := settings{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(&s)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     s.level,
		AddSource: s.addSource,
	}

	var handler slog.Handler
	switch s.format {
	case FormatText:
		handler = slog.NewTextHandler(s.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(s.output, handlerOpts)
	}
	if len(s.attrs) > 0 {
		handler = handler.WithAttrs(s.attrs)
	}

	return slog.New(newContextHandler(handler, s.extractors))
}

// NewFromConfig builds a logger from an environment-driven Config. Options
// win over config values. Unrecognized levels fall back to info rather than
// failing, since a broken LOG_LEVEL should not take the service down.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	base := []Option{WithLevel(level)}
	if cfg.Format != "" {
		base = append(base, WithFormat(cfg.Format))
	}
	if cfg.AddSource {
		base = append(base, WithSource())
	}
	if cfg.Service != "" {
		base = append(base, WithAttr(
			slog.String("service", cfg.Service),
			slog.String("env", cfg.Env),
		))
	}

	return New(append(base, opts...)...)
}

// SetAsDefault installs l as the process-wide default, routing both slog
// and the legacy log package through it.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}
