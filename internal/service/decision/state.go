package decision

import (
	"sync/atomic"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

// State is shared between the roster refresh and the poll cycle.
// The roster is swapped whole; readers never observe a partial roster.
type State struct {
	roster atomic.Pointer[domain.ShiftRoster]
}

func NewState() *State {
	return &State{}
}

func (s *State) ReplaceRoster(roster *domain.ShiftRoster) {
	s.roster.Store(roster)
}

// Roster returns the current roster, or nil before the first refresh.
func (s *State) Roster() *domain.ShiftRoster {
	return s.roster.Load()
}

func (s *State) RosterLoaded() bool {
	return s.roster.Load() != nil
}
