package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/option"
)

func TestGoogleSourceFetch(t *testing.T) {
	var pageTokens []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/calendars/shifts@example.com/events") {
			http.NotFound(w, r)
			return
		}
		pageTokens = append(pageTokens, r.URL.Query().Get("pageToken"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			_, _ = w.Write([]byte(`{
				"items": [
					{"id": "day-a", "status": "confirmed", "summary": "Day A",
					 "start": {"dateTime": "2024-01-03T08:00:00-05:00"},
					 "end": {"dateTime": "2024-01-03T20:00:00-05:00"}},
					{"id": "gone", "status": "cancelled",
					 "start": {"dateTime": "2024-01-05T08:00:00-05:00"},
					 "end": {"dateTime": "2024-01-05T20:00:00-05:00"}}
				],
				"nextPageToken": "page-2"
			}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"items": [
				{"id": "training", "status": "confirmed", "summary": "Training day",
				 "start": {"date": "2024-01-09"},
				 "end": {"date": "2024-01-10"}},
				{"id": "broken", "status": "confirmed",
				 "start": {"dateTime": "soon"},
				 "end": {"dateTime": "2024-01-05T20:00:00-05:00"}}
			]
		}`))
	}))
	defer srv.Close()

	src, err := NewGoogleSource(context.Background(), "test-key", "shifts@example.com", time.UTC,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(events), events)
	}

	wantStart := time.Date(2024, time.January, 3, 13, 0, 0, 0, time.UTC)
	if events[0].ID != "day-a" || !events[0].Start.Equal(wantStart) {
		t.Errorf("unexpected first event %+v", events[0])
	}
	wantAllDay := time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC)
	if events[1].ID != "training" || !events[1].Start.Equal(wantAllDay) {
		t.Errorf("unexpected second event %+v", events[1])
	}

	if len(pageTokens) != 2 {
		t.Fatalf("expected 2 page requests, got %d", len(pageTokens))
	}
}
