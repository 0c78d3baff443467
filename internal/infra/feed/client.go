package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

type Client struct {
	url        string
	unitID     string
	location   *time.Location
	httpClient *http.Client
	requested  atomic.Int64
}

var _ domain.IncidentFeedSource = (*Client)(nil)

func NewClient(url, unitID string, location *time.Location) *Client {
	return &Client{
		url:      url,
		unitID:   unitID,
		location: location,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Requested returns how many requests were sent to the feed, failed ones included.
func (c *Client) Requested() int64 {
	return c.requested.Load()
}

func (c *Client) Fetch(ctx context.Context) ([]domain.IncidentRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := c.httpClient.Do(req)
	count := c.requested.Add(1)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to incident feed",
			slog.String("url", c.url),
			slog.Int64("times_requested", count),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.ErrorContext(ctx, "unexpected status code from incident feed",
			slog.String("url", c.url),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	records, err := Decode(ctx, resp.Body, c.unitID, c.location)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "fetched incident feed",
		slog.Int64("times_requested", count),
		slog.String("unit_id", c.unitID),
		slog.Int("incident_count", len(records)),
	)

	return records, nil
}
