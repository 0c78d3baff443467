package roster

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

const (
	// RecurrenceIntervalDays is the spacing between two occurrences of a base shift.
	RecurrenceIntervalDays = 28

	// MaxProjectionAdvances bounds how far a base shift is walked forward:
	// 27 advances of 28 days cover two calendar years.
	MaxProjectionAdvances = 27
)

type Scheduler struct {
	now func() time.Time
}

func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Now}
}

// ComputeCurrentMonthRoster projects every base event onto the reference month.
// An event lands on the month at its first 28-day advance whose start falls inside
// it; the next advance is kept as well when it is still inside the month.
// Unusable events are skipped; the rest of the batch is still projected.
func (s *Scheduler) ComputeCurrentMonthRoster(
	ctx context.Context,
	baseEvents []domain.BaseRecurringEvent,
	month domain.ReferenceMonth,
) *domain.ShiftRoster {
	roster := domain.EmptyRoster(month)
	roster.ComputedAt = s.now()

	if len(baseEvents) == 0 {
		return roster
	}

	byStart := make(map[int64]domain.ShiftWindow)
	for _, ev := range baseEvents {
		windows, err := s.project(ev, month)
		if err != nil {
			slog.WarnContext(ctx, "skipping base shift event",
				slog.String("event_id", ev.ID),
				slog.Time("start", ev.Start),
				slog.Time("end", ev.End),
				slog.String("month", month.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		for _, w := range windows {
			if w.Degenerate() {
				// Kept on purpose: the open-interval gate can never match it.
				slog.WarnContext(ctx, "degenerate shift window projected",
					slog.String("event_id", ev.ID),
					slog.Time("start", w.Start),
				)
			}
			key := w.Start.UnixNano()
			if _, dup := byStart[key]; !dup {
				byStart[key] = w
			}
		}
	}

	for _, w := range byStart {
		roster.Windows = append(roster.Windows, w)
	}
	slices.SortFunc(roster.Windows, func(a, b domain.ShiftWindow) int {
		return a.Start.Compare(b.Start)
	})

	slog.DebugContext(ctx, "roster computed",
		slog.String("month", month.String()),
		slog.Int("base_event_count", len(baseEvents)),
		slog.Int("window_count", len(roster.Windows)),
	)

	return roster
}

func (s *Scheduler) project(ev domain.BaseRecurringEvent, month domain.ReferenceMonth) ([]domain.ShiftWindow, error) {
	if !ev.Usable() {
		return nil, domain.ErrUnusableShiftBounds
	}

	monthStart := month.Start()
	monthEnd := month.End()
	if !ev.Start.Before(monthEnd) {
		return nil, domain.ErrShiftNeverAligns
	}

	// Initial window, the bounded advances, and the one further advance.
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Interval: RecurrenceIntervalDays,
		Count:    MaxProjectionAdvances + 2,
		Dtstart:  ev.Start,
	})
	if err != nil {
		return nil, err
	}

	starts := rule.Between(monthStart, monthEnd.Add(-time.Nanosecond), true)
	if len(starts) == 0 {
		return nil, domain.ErrShiftNeverAligns
	}

	duration := ev.End.Sub(ev.Start)
	windows := make([]domain.ShiftWindow, 0, len(starts))
	for _, start := range starts {
		windows = append(windows, domain.ShiftWindow{
			Start: start,
			End:   start.Add(duration),
		})
	}
	return windows, nil
}
