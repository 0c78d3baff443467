package decision

import (
	"time"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
	"github.com/KasumiMercury/dispatch-watch/internal/service/dedup"
	"github.com/KasumiMercury/dispatch-watch/internal/service/workwindow"
)

// ProcessBatch decides which incidents of one fetched batch are notified.
// The duty gate is evaluated once for the batch: either every new incident is
// notified and marked seen at now, or none is and seen is returned unchanged.
// Suppressed incidents stay unseen so a later on-duty cycle can still report them.
func ProcessBatch(
	raw []domain.IncidentRecord,
	seen domain.SeenIncidentSet,
	roster *domain.ShiftRoster,
	now time.Time,
	mode GateMode,
) Result {
	if seen == nil {
		seen = domain.NewSeenIncidentSet()
	}

	result := Result{
		Candidates:  len(raw),
		ToNotify:    []domain.IncidentRecord{},
		UpdatedSeen: seen,
	}

	result.New = dedup.SelectNew(raw, seen)
	if len(result.New) == 0 {
		result.Outcome = domain.OutcomeNoUpdates
		return result
	}

	result.OnDuty = onDuty(result.New, roster, now, mode)
	if !result.OnDuty {
		result.Outcome = domain.OutcomeSuppressed
		return result
	}

	result.ToNotify = result.New
	result.UpdatedSeen = seen.With(domain.IncidentIDs(result.New), now)
	result.Outcome = domain.OutcomeDispatched
	return result
}

func onDuty(incidents []domain.IncidentRecord, roster *domain.ShiftRoster, now time.Time, mode GateMode) bool {
	if mode != GateDispatch {
		return workwindow.IsActive(now, roster)
	}

	instants := make([]time.Time, 0, len(incidents))
	for _, inc := range incidents {
		instants = append(instants, inc.DispatchTime)
	}
	return workwindow.AnyActive(instants, roster)
}
