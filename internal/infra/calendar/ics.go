package calendar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

// ICSSource reads base shifts from an iCalendar subscription URL.
type ICSSource struct {
	url    string
	client *http.Client
}

var _ domain.CalendarSource = (*ICSSource)(nil)

func NewICSSource(url string) *ICSSource {
	return &ICSSource{
		url: url,
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (s *ICSSource) Fetch(ctx context.Context) ([]domain.BaseRecurringEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return ParseICS(ctx, body)
}

// ParseICS extracts the master VEVENTs of an iCalendar payload. Overrides
// (RECURRENCE-ID) and cancelled entries are ignored; entries without a
// parsable DTSTART/DTEND are skipped individually.
func ParseICS(ctx context.Context, body []byte) ([]domain.BaseRecurringEvent, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyCalendar
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	events := make([]domain.BaseRecurringEvent, 0)
	for _, ve := range cal.Events() {
		if ve.GetProperty(ical.ComponentProperty("RECURRENCE-ID")) != nil {
			continue
		}
		if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil && strings.EqualFold(p.Value, "CANCELLED") {
			continue
		}

		ev, err := parseVEvent(ve)
		if err != nil {
			slog.WarnContext(ctx, "skipping calendar entry",
				slog.String("event_id", ev.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent) (domain.BaseRecurringEvent, error) {
	ev := domain.BaseRecurringEvent{ID: ve.Id()}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Summary = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return ev, fmt.Errorf("invalid DTSTART: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return ev, fmt.Errorf("invalid DTEND: %w", err)
	}

	ev.Start = start
	ev.End = end
	return ev, nil
}
