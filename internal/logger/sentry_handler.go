package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// tagKeys are record attributes copied onto Sentry events as searchable tags.
var tagKeys = map[string]bool{
	"chat_id": true,
	"user_id": true,
	"stage":   true,
}

// SentryHandler wraps an slog.Handler and reports errors to Sentry
type SentryHandler struct {
	handler slog.Handler
	attrs   []slog.Attr
	// hub receives captured events; nil means the global hub.
	hub *sentry.Hub
}

func NewSentryHandler(handler slog.Handler) *SentryHandler {
	return &SentryHandler{handler: handler}
}

func (h *SentryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle forwards every record and, for ERROR and above, captures the "error"
// attribute as a Sentry exception with the record message and tags attached.
func (h *SentryHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		var captured error
		tags := make(map[string]string)
		collect := func(a slog.Attr) bool {
			if a.Key == "error" {
				if err, ok := a.Value.Any().(error); ok {
					captured = err
				}
			}
			if tagKeys[a.Key] {
				tags[a.Key] = a.Value.String()
			}
			return true
		}
		for _, a := range h.attrs {
			collect(a)
		}
		r.Attrs(collect)

		if captured != nil {
			hub := h.hub
			if hub == nil {
				hub = sentry.CurrentHub()
			}
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTags(tags)
				scope.SetExtra("message", r.Message)
				hub.CaptureException(fmt.Errorf("%s: %w", r.Message, captured))
			})
		}
	}
	return h.handler.Handle(ctx, r)
}

func (h *SentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &SentryHandler{handler: h.handler.WithAttrs(attrs), attrs: merged, hub: h.hub}
}

func (h *SentryHandler) WithGroup(name string) slog.Handler {
	return &SentryHandler{handler: h.handler.WithGroup(name), attrs: h.attrs, hub: h.hub}
}
