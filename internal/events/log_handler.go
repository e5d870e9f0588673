package events

import (
	"context"
	"log/slog"
)

// NewLogHandler returns a handler that logs each event at info level.
func NewLogHandler(logger *slog.Logger) EventHandler {
	logger = logger.With("component", "event_log")
	return HandlerFunc(func(ctx context.Context, event *Event) error {
		logger.InfoContext(ctx, "collection changed",
			"event_id", event.ID,
			"event_kind", event.Kind)
		return nil
	})
}
