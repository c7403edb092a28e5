package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// ContextHandler wraps a slog.Handler and injects attributes from context.
// Extraction happens per log call, so request-scoped values like request IDs
// are always current.
type ContextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewContextHandler creates a decorated handler. Nil extractors are dropped.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &ContextHandler{next: next, extractors: clean}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if len(h.extractors) == 0 {
		return h.next.Handle(ctx, rec)
	}
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
