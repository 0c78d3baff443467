package decision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

type Engine struct {
	state *State
	seen  domain.SeenIncidentRepository
	mode  GateMode
	now   func() time.Time
}

func NewEngine(state *State, seen domain.SeenIncidentRepository, mode GateMode) *Engine {
	return &Engine{
		state: state,
		seen:  seen,
		mode:  mode,
		now:   time.Now,
	}
}

// Decide runs one batch through dedup and the duty gate and persists the
// newly notified ids. A failed lookup or mark aborts the cycle before any
// notification is produced.
func (e *Engine) Decide(ctx context.Context, raw []domain.IncidentRecord) (*Result, error) {
	candidates := e.sanitize(ctx, raw)
	dropped := len(raw) - len(candidates)

	seen, err := e.seen.Lookup(ctx, domain.IncidentIDs(candidates))
	if err != nil {
		return nil, fmt.Errorf("failed to look up seen incidents: %w", err)
	}

	now := e.now()
	roster := e.state.Roster()
	result := ProcessBatch(candidates, seen, roster, now, e.mode)
	result.Candidates = len(raw)
	result.Dropped = dropped

	switch result.Outcome {
	case domain.OutcomeNoUpdates:
		slog.InfoContext(ctx, "no new updates",
			slog.Int("candidate_count", len(raw)),
		)
		return &result, nil

	case domain.OutcomeSuppressed:
		slog.InfoContext(ctx, "new incidents outside working hours",
			slog.Int("new_count", len(result.New)),
			slog.String("gate_mode", e.mode.String()),
			slog.Bool("roster_loaded", roster != nil),
			slog.Int("roster_windows", roster.Len()),
		)
		return &result, nil
	}

	if err := e.seen.MarkSeen(ctx, domain.IncidentIDs(result.ToNotify), now); err != nil {
		return nil, fmt.Errorf("failed to mark incidents seen: %w", err)
	}

	slog.InfoContext(ctx, "new incidents during working hours",
		slog.Int("notify_count", len(result.ToNotify)),
		slog.String("gate_mode", e.mode.String()),
	)

	return &result, nil
}

// sanitize drops records that fail validation and repeated ids within the
// batch. Each bad record is skipped on its own.
func (e *Engine) sanitize(ctx context.Context, raw []domain.IncidentRecord) []domain.IncidentRecord {
	out := make([]domain.IncidentRecord, 0, len(raw))
	ids := make(map[string]struct{}, len(raw))

	for _, inc := range raw {
		if err := inc.Validate(); err != nil {
			slog.WarnContext(ctx, "skipping malformed incident",
				slog.String("incident_id", inc.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if _, dup := ids[inc.ID]; dup {
			slog.DebugContext(ctx, "skipping repeated incident in batch",
				slog.String("incident_id", inc.ID),
			)
			continue
		}
		ids[inc.ID] = struct{}{}
		out = append(out, inc)
	}

	return out
}
