package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls attributes out of a context. Extractors run on
// every record, so they must be fast and safe for concurrent use.
type ContextExtractor func(ctx context.Context) []slog.Attr

// contextHandler appends context-derived attributes to each record before
// delegating to the wrapped handler.
type contextHandler struct {
	inner      slog.Handler
	extractors []ContextExtractor
}

// newContextHandler wraps inner with the given extractors. With no
// extractors the inner handler is returned as is, keeping the hot path
// free of an empty loop.
func newContextHandler(inner slog.Handler, extractors []ContextExtractor) slog.Handler {
	if len(extractors) == 0 {
		return inner
	}
	return &contextHandler{inner: inner, extractors: extractors}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, extract := range h.extractors {
		if attrs := extract(ctx); len(attrs) > 0 {
			record.AddAttrs(attrs...)
		}
	}
	return h.inner.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{inner: h.inner.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{inner: h.inner.WithGroup(name), extractors: h.extractors}
}
