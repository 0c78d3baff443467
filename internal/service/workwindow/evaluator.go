package workwindow

import (
	"time"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

// IsActive reports whether instant lies strictly inside any window of the roster.
// Boundary instants are not covered, so a degenerate window never matches.
func IsActive(instant time.Time, roster *domain.ShiftRoster) bool {
	if roster == nil {
		return false
	}
	for _, w := range roster.Windows {
		if w.Contains(instant) {
			return true
		}
	}
	return false
}

// AnyActive reports whether at least one of the instants is active.
func AnyActive(instants []time.Time, roster *domain.ShiftRoster) bool {
	for _, instant := range instants {
		if IsActive(instant, roster) {
			return true
		}
	}
	return false
}
