package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

const googlePageSize = 250

// GoogleSource reads base shifts from a Google calendar with an API key.
type GoogleSource struct {
	service    *gcal.Service
	calendarID string
	location   *time.Location
}

var _ domain.CalendarSource = (*GoogleSource)(nil)

func NewGoogleSource(ctx context.Context, apiKey, calendarID string, location *time.Location, opts ...option.ClientOption) (*GoogleSource, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	service, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	if location == nil {
		location = time.Local
	}

	return &GoogleSource{
		service:    service,
		calendarID: calendarID,
		location:   location,
	}, nil
}

func (s *GoogleSource) Fetch(ctx context.Context) ([]domain.BaseRecurringEvent, error) {
	events := make([]domain.BaseRecurringEvent, 0)

	call := s.service.Events.List(s.calendarID).
		SingleEvents(false).
		ShowDeleted(false).
		MaxResults(googlePageSize)

	err := call.Pages(ctx, func(page *gcal.Events) error {
		for _, item := range page.Items {
			if item.Status == "cancelled" {
				continue
			}
			ev, err := s.toBaseEvent(item)
			if err != nil {
				slog.WarnContext(ctx, "skipping calendar entry",
					slog.String("event_id", item.Id),
					slog.String("error", err.Error()),
				)
				continue
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	slog.DebugContext(ctx, "fetched google calendar",
		slog.String("calendar_id", s.calendarID),
		slog.Int("event_count", len(events)),
	)

	return events, nil
}

func (s *GoogleSource) toBaseEvent(item *gcal.Event) (domain.BaseRecurringEvent, error) {
	start, err := s.eventTime(item.Start)
	if err != nil {
		return domain.BaseRecurringEvent{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := s.eventTime(item.End)
	if err != nil {
		return domain.BaseRecurringEvent{}, fmt.Errorf("invalid end: %w", err)
	}

	return domain.BaseRecurringEvent{
		ID:      item.Id,
		Summary: item.Summary,
		Start:   start,
		End:     end,
	}, nil
}

// eventTime reads a timed or an all-day boundary.
func (s *GoogleSource) eventTime(et *gcal.EventDateTime) (time.Time, error) {
	if et == nil {
		return time.Time{}, ErrMissingTime
	}
	if et.DateTime != "" {
		return time.Parse(time.RFC3339, et.DateTime)
	}
	if et.Date != "" {
		loc := s.location
		if et.TimeZone != "" {
			if l, err := time.LoadLocation(et.TimeZone); err == nil {
				loc = l
			}
		}
		return time.ParseInLocation(time.DateOnly, et.Date, loc)
	}
	return time.Time{}, ErrMissingTime
}
