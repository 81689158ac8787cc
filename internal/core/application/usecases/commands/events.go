package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
)

// publishEvent emits an integration event after a committed transaction.
// Publishing failures are logged and swallowed: the state change already
// committed and must not be reported as failed.
func publishEvent(ctx context.Context, publisher ports.EventPublisher, eventType, subject, actor string, payload map[string]any) {
	if publisher == nil {
		return
	}

	event := ports.Event{
		Type:      eventType,
		Subject:   subject,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish event",
			"type", eventType, "subject", subject, "error", err)
	}
}
