package decision

import (
	"fmt"
	"strings"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

// GateMode selects which instant the duty gate is evaluated at.
type GateMode string

const (
	// GateBatch tests the decision instant once for the whole batch.
	GateBatch GateMode = "batch"
	// GateDispatch passes when any new incident was dispatched inside a shift.
	GateDispatch GateMode = "dispatch"
)

func (m GateMode) String() string {
	return string(m)
}

func ParseGateMode(raw string) (GateMode, error) {
	switch GateMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", GateBatch:
		return GateBatch, nil
	case GateDispatch:
		return GateDispatch, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGateMode, raw)
	}
}

// Result is the outcome of one batch decision.
type Result struct {
	Candidates  int
	Dropped     int
	New         []domain.IncidentRecord
	ToNotify    []domain.IncidentRecord
	UpdatedSeen domain.SeenIncidentSet
	OnDuty      bool
	Outcome     domain.CycleOutcome
}
