package notifier

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

// LogSink writes messages to the process log. Used when no webhook is configured.
type LogSink struct{}

var _ domain.NotificationSink = LogSink{}

func (LogSink) Send(ctx context.Context, message string) error {
	slog.InfoContext(ctx, "notification",
		slog.String("message", message),
		slog.String("delivery_key", DeliveryKeyFromContext(ctx)),
	)
	return nil
}
