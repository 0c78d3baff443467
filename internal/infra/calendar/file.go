package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

// fileLayouts are tried after RFC 3339 for times written without an offset.
var fileLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

type shiftFile struct {
	Shifts []shiftEntry `yaml:"shifts"`
}

type shiftEntry struct {
	ID      string `yaml:"id"`
	Summary string `yaml:"summary"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
}

// FileSource reads base shifts from a local YAML file, re-read on every fetch.
type FileSource struct {
	path     string
	location *time.Location
}

var _ domain.CalendarSource = (*FileSource)(nil)

func NewFileSource(path string, location *time.Location) *FileSource {
	if location == nil {
		location = time.Local
	}
	return &FileSource{path: path, location: location}
}

func (s *FileSource) Fetch(ctx context.Context) ([]domain.BaseRecurringEvent, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar file: %w", err)
	}

	var doc shiftFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse calendar file: %w", err)
	}

	events := make([]domain.BaseRecurringEvent, 0, len(doc.Shifts))
	for i, entry := range doc.Shifts {
		id := entry.ID
		if id == "" {
			id = fmt.Sprintf("shift-%d", i+1)
		}

		start, startErr := s.parseTime(entry.Start)
		end, endErr := s.parseTime(entry.End)
		if startErr != nil || endErr != nil {
			slog.WarnContext(ctx, "skipping calendar entry",
				slog.String("event_id", id),
				slog.String("start", entry.Start),
				slog.String("end", entry.End),
			)
			continue
		}

		events = append(events, domain.BaseRecurringEvent{
			ID:      id,
			Summary: entry.Summary,
			Start:   start,
			End:     end,
		})
	}

	return events, nil
}

func (s *FileSource) parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, ErrMissingTime
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range fileLayouts {
		if t, err := time.ParseInLocation(layout, raw, s.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMissingTime, raw)
}
