package decision

import (
	"testing"
	"time"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

var (
	shiftStart = time.Date(2024, time.February, 28, 8, 0, 0, 0, time.UTC)
	shiftEnd   = time.Date(2024, time.February, 28, 20, 0, 0, 0, time.UTC)
)

func testRoster() *domain.ShiftRoster {
	return &domain.ShiftRoster{
		Month:   domain.ReferenceMonth{Year: 2024, Month: time.February, Location: time.UTC},
		Windows: []domain.ShiftWindow{{Start: shiftStart, End: shiftEnd}},
	}
}

func incidentAt(id string, dispatched time.Time) domain.IncidentRecord {
	return domain.IncidentRecord{
		ID:              id,
		RespondingUnits: []string{"P314"},
		PrimaryLocation: "QUEEN ST W",
		CrossStreets:    "SPADINA AVE",
		EventType:       "Vehicle Fire",
		AlarmLevel:      "1",
		DispatchTime:    dispatched,
	}
}

func TestProcessBatch(t *testing.T) {
	onShift := shiftStart.Add(2 * time.Hour)
	offShift := shiftEnd.Add(2 * time.Hour)
	marked := shiftStart.Add(-24 * time.Hour)

	tests := []struct {
		name         string
		raw          []domain.IncidentRecord
		seen         domain.SeenIncidentSet
		now          time.Time
		mode         GateMode
		wantOutcome  domain.CycleOutcome
		wantNotify   []string
		wantSeenSize int
	}{
		{
			name:         "bootstrap during shift notifies everything",
			raw:          []domain.IncidentRecord{incidentAt("A", onShift), incidentAt("B", onShift)},
			seen:         domain.NewSeenIncidentSet(),
			now:          onShift,
			mode:         GateBatch,
			wantOutcome:  domain.OutcomeDispatched,
			wantNotify:   []string{"A", "B"},
			wantSeenSize: 2,
		},
		{
			name:         "only the unseen incident is notified",
			raw:          []domain.IncidentRecord{incidentAt("101", onShift), incidentAt("102", onShift)},
			seen:         domain.SeenIncidentSet{"101": marked},
			now:          onShift,
			mode:         GateBatch,
			wantOutcome:  domain.OutcomeDispatched,
			wantNotify:   []string{"102"},
			wantSeenSize: 2,
		},
		{
			name:         "nothing new leaves seen unchanged",
			raw:          []domain.IncidentRecord{incidentAt("101", onShift)},
			seen:         domain.SeenIncidentSet{"101": marked},
			now:          onShift,
			mode:         GateBatch,
			wantOutcome:  domain.OutcomeNoUpdates,
			wantNotify:   []string{},
			wantSeenSize: 1,
		},
		{
			name:         "off shift suppresses and keeps incidents unseen",
			raw:          []domain.IncidentRecord{incidentAt("201", offShift)},
			seen:         domain.SeenIncidentSet{"101": marked},
			now:          offShift,
			mode:         GateBatch,
			wantOutcome:  domain.OutcomeSuppressed,
			wantNotify:   []string{},
			wantSeenSize: 1,
		},
		{
			name:         "shift start boundary is off duty",
			raw:          []domain.IncidentRecord{incidentAt("301", shiftStart)},
			seen:         nil,
			now:          shiftStart,
			mode:         GateBatch,
			wantOutcome:  domain.OutcomeSuppressed,
			wantNotify:   []string{},
			wantSeenSize: 0,
		},
		{
			name:         "batch mode ignores dispatch times",
			raw:          []domain.IncidentRecord{incidentAt("401", onShift)},
			seen:         nil,
			now:          offShift,
			mode:         GateBatch,
			wantOutcome:  domain.OutcomeSuppressed,
			wantNotify:   []string{},
			wantSeenSize: 0,
		},
		{
			name:         "dispatch mode passes on an in-shift dispatch time",
			raw:          []domain.IncidentRecord{incidentAt("401", onShift), incidentAt("402", offShift)},
			seen:         nil,
			now:          offShift,
			mode:         GateDispatch,
			wantOutcome:  domain.OutcomeDispatched,
			wantNotify:   []string{"401", "402"},
			wantSeenSize: 2,
		},
		{
			name:         "dispatch mode suppresses when no dispatch time is in shift",
			raw:          []domain.IncidentRecord{incidentAt("402", offShift)},
			seen:         nil,
			now:          onShift,
			mode:         GateDispatch,
			wantOutcome:  domain.OutcomeSuppressed,
			wantNotify:   []string{},
			wantSeenSize: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProcessBatch(tt.raw, tt.seen, testRoster(), tt.now, tt.mode)

			if got.Outcome != tt.wantOutcome {
				t.Errorf("outcome: got %v, want %v", got.Outcome, tt.wantOutcome)
			}

			ids := domain.IncidentIDs(got.ToNotify)
			if len(ids) != len(tt.wantNotify) {
				t.Fatalf("to notify: got %v, want %v", ids, tt.wantNotify)
			}
			for i := range ids {
				if ids[i] != tt.wantNotify[i] {
					t.Errorf("to notify[%d]: got %q, want %q", i, ids[i], tt.wantNotify[i])
				}
			}

			if got.UpdatedSeen.Len() != tt.wantSeenSize {
				t.Errorf("seen size: got %d, want %d", got.UpdatedSeen.Len(), tt.wantSeenSize)
			}
		})
	}
}

func TestProcessBatch_MarksNotifiedAtDecisionTime(t *testing.T) {
	now := shiftStart.Add(time.Hour)
	marked := shiftStart.Add(-time.Hour)

	got := ProcessBatch(
		[]domain.IncidentRecord{incidentAt("101", now), incidentAt("102", now)},
		domain.SeenIncidentSet{"101": marked},
		testRoster(),
		now,
		GateBatch,
	)

	if !got.UpdatedSeen["101"].Equal(marked) {
		t.Errorf("existing mark: got %v, want %v", got.UpdatedSeen["101"], marked)
	}
	if !got.UpdatedSeen["102"].Equal(now) {
		t.Errorf("new mark: got %v, want %v", got.UpdatedSeen["102"], now)
	}
}

func TestProcessBatch_SuppressedIncidentNotifiedLater(t *testing.T) {
	raw := []domain.IncidentRecord{incidentAt("201", shiftStart.Add(-time.Hour))}

	off := ProcessBatch(raw, nil, testRoster(), shiftStart.Add(-time.Hour), GateBatch)
	if off.Outcome != domain.OutcomeSuppressed {
		t.Fatalf("first cycle: got %v, want %v", off.Outcome, domain.OutcomeSuppressed)
	}

	on := ProcessBatch(raw, off.UpdatedSeen, testRoster(), shiftStart.Add(time.Hour), GateBatch)
	if on.Outcome != domain.OutcomeDispatched {
		t.Fatalf("second cycle: got %v, want %v", on.Outcome, domain.OutcomeDispatched)
	}
	if len(on.ToNotify) != 1 || on.ToNotify[0].ID != "201" {
		t.Errorf("second cycle notified %v, want [201]", domain.IncidentIDs(on.ToNotify))
	}

	again := ProcessBatch(raw, on.UpdatedSeen, testRoster(), shiftStart.Add(2*time.Hour), GateBatch)
	if again.Outcome != domain.OutcomeNoUpdates {
		t.Errorf("third cycle: got %v, want %v", again.Outcome, domain.OutcomeNoUpdates)
	}
}

func TestProcessBatch_NilRosterSuppresses(t *testing.T) {
	got := ProcessBatch([]domain.IncidentRecord{incidentAt("1", shiftStart)}, nil, nil, shiftStart.Add(time.Hour), GateBatch)

	if got.Outcome != domain.OutcomeSuppressed {
		t.Errorf("outcome: got %v, want %v", got.Outcome, domain.OutcomeSuppressed)
	}
}

func TestParseGateMode(t *testing.T) {
	tests := []struct {
		raw     string
		want    GateMode
		wantErr bool
	}{
		{raw: "", want: GateBatch},
		{raw: "batch", want: GateBatch},
		{raw: " Dispatch ", want: GateDispatch},
		{raw: "per-incident", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseGateMode(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGateMode(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseGateMode(%q): got %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
