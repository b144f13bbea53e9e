package alert

import (
	"context"
	"log/slog"
)

// SlogAlerter writes alerts to a structured logger at Error level. It is
// the default channel for development and for deployments that page off
// log-based monitors.
type SlogAlerter struct {
	logger *slog.Logger
}

// NewSlogAlerter creates a log-backed alerter. A nil logger falls back to
// slog.Default().
func NewSlogAlerter(logger *slog.Logger) *SlogAlerter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAlerter{logger: logger}
}

func (s *SlogAlerter) Send(ctx context.Context, a Alert) error {
	if err := a.Validate(); err != nil {
		return err
	}

	attrs := make([]any, 0, 3+len(a.Fields))
	attrs = append(attrs, slog.String("alert_subject", a.Subject))
	if a.Tag != "" {
		attrs = append(attrs, slog.String("alert_tag", a.Tag))
	}
	if a.Message != "" {
		attrs = append(attrs, slog.String("alert_message", a.Message))
	}
	for _, k := range a.sortedFieldKeys() {
		attrs = append(attrs, slog.String(k, a.Fields[k]))
	}

	s.logger.ErrorContext(ctx, "operational alert", attrs...)
	return nil
}
