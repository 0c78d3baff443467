package domain

import (
	"fmt"
	"time"
)

// ShiftRecurrence is the implicit recurrence period of every base duty shift.
const ShiftRecurrence = 28 * 24 * time.Hour

// BaseRecurringEvent is a calendar entry that recurs every four weeks.
type BaseRecurringEvent struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
}

// Usable reports whether the event carries a start/end pair that can be projected.
// A zero-length event is usable; it projects onto a degenerate window.
func (e BaseRecurringEvent) Usable() bool {
	if e.Start.IsZero() || e.End.IsZero() {
		return false
	}
	return !e.End.Before(e.Start)
}

// ShiftWindow is one concrete occurrence of a duty shift.
type ShiftWindow struct {
	Start time.Time
	End   time.Time
}

// Degenerate reports whether the window has no duration. Such a window can
// never contain an instant under the open-interval test.
func (w ShiftWindow) Degenerate() bool {
	return w.Start.Equal(w.End)
}

// Contains tests strict membership: instants on either boundary are outside.
func (w ShiftWindow) Contains(instant time.Time) bool {
	return w.Start.Before(instant) && instant.Before(w.End)
}

// ReferenceMonth identifies a calendar month in a given location.
type ReferenceMonth struct {
	Year     int
	Month    time.Month
	Location *time.Location
}

func MonthOf(t time.Time) ReferenceMonth {
	return ReferenceMonth{Year: t.Year(), Month: t.Month(), Location: t.Location()}
}

func (m ReferenceMonth) location() *time.Location {
	if m.Location == nil {
		return time.Local
	}
	return m.Location
}

// Start returns the first instant of the month.
func (m ReferenceMonth) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, m.location())
}

// End returns the first instant of the following month.
func (m ReferenceMonth) End() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

// Includes reports whether t falls inside the month, evaluated in the month's location.
func (m ReferenceMonth) Includes(t time.Time) bool {
	local := t.In(m.location())
	return local.Year() == m.Year && local.Month() == m.Month
}

func (m ReferenceMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// ShiftRoster is the ascending, start-unique set of shift windows for one month.
type ShiftRoster struct {
	Month      ReferenceMonth
	Windows    []ShiftWindow
	ComputedAt time.Time
}

func EmptyRoster(month ReferenceMonth) *ShiftRoster {
	return &ShiftRoster{Month: month, Windows: []ShiftWindow{}}
}

func (r *ShiftRoster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Windows)
}
