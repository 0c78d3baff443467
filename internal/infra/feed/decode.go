package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

// dispatchTimeLayouts are tried in order; the feed carries local wall-clock times.
var dispatchTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

type activeIncidents struct {
	XMLName   xml.Name    `xml:"tfs_active_incidents"`
	UpdatedAt string      `xml:"update_from_db_time"`
	Events    []feedEvent `xml:"event"`
}

type feedEvent struct {
	PrimeStreet  string `xml:"prime_street"`
	CrossStreets string `xml:"cross_streets"`
	DispatchTime string `xml:"dispatch_time"`
	EventNum     string `xml:"event_num"`
	EventType    string `xml:"event_type"`
	AlarmLevel   string `xml:"alarm_lev"`
	Beat         string `xml:"beat"`
	UnitsDisp    string `xml:"units_disp"`
}

// Decode parses an active-incidents document and returns the incidents the
// given unit responded to, in document order. An empty unitID keeps every
// incident. Records that fail validation are skipped one by one.
func Decode(ctx context.Context, r io.Reader, unitID string, loc *time.Location) ([]domain.IncidentRecord, error) {
	if loc == nil {
		loc = time.Local
	}

	var doc activeIncidents
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFeed, err)
	}

	records := make([]domain.IncidentRecord, 0, len(doc.Events))
	for _, ev := range doc.Events {
		rec := ev.toRecord(loc)

		if unitID != "" && !rec.RespondedBy(unitID) {
			continue
		}

		if err := rec.Validate(); err != nil {
			slog.WarnContext(ctx, "skipping malformed feed event",
				slog.String("event_num", ev.EventNum),
				slog.String("dispatch_time", ev.DispatchTime),
				slog.String("error", err.Error()),
			)
			continue
		}

		records = append(records, rec)
	}

	return records, nil
}

func (e feedEvent) toRecord(loc *time.Location) domain.IncidentRecord {
	return domain.IncidentRecord{
		ID:              strings.TrimSpace(e.EventNum),
		RespondingUnits: splitUnits(e.UnitsDisp),
		PrimaryLocation: strings.TrimSpace(e.PrimeStreet),
		CrossStreets:    strings.TrimSpace(e.CrossStreets),
		EventType:       strings.TrimSpace(e.EventType),
		AlarmLevel:      strings.TrimSpace(e.AlarmLevel),
		DispatchTime:    parseDispatchTime(e.DispatchTime, loc),
	}
}

func splitUnits(raw string) []string {
	parts := strings.Split(raw, ",")
	units := make([]string, 0, len(parts))
	for _, p := range parts {
		if u := strings.TrimSpace(p); u != "" {
			units = append(units, u)
		}
	}
	return units
}

// parseDispatchTime returns the zero time when no layout matches.
func parseDispatchTime(raw string, loc *time.Location) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dispatchTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}
