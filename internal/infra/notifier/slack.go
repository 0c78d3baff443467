package notifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

// SlackWebhook posts messages to an incoming-webhook URL.
type SlackWebhook struct {
	url        string
	httpClient *http.Client
}

var _ domain.NotificationSink = (*SlackWebhook)(nil)

func NewSlackWebhook(url string) *SlackWebhook {
	return &SlackWebhook{
		url: url,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (s *SlackWebhook) Send(ctx context.Context, message string) error {
	body, err := marshalPayload(message)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.ErrorContext(ctx, "webhook rejected message",
			slog.Int("status_code", resp.StatusCode),
			slog.String("response", string(detail)),
		)
		return fmt.Errorf("%w: status %d", domain.ErrNotificationRejected, resp.StatusCode)
	}

	slog.InfoContext(ctx, "webhook message sent",
		slog.Int("status_code", resp.StatusCode),
	)

	return nil
}
