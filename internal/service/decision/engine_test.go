package decision

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

func newTestEngine(t *testing.T, repo domain.SeenIncidentRepository, now time.Time) *Engine {
	t.Helper()

	state := NewState()
	state.ReplaceRoster(testRoster())

	e := NewEngine(state, repo, GateBatch)
	e.now = func() time.Time { return now }
	return e
}

func TestEngine_DecideMarksNotified(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockSeenIncidentRepository(ctrl)

	now := shiftStart.Add(time.Hour)
	ctx := context.Background()

	repo.EXPECT().
		Lookup(gomock.Any(), []string{"101", "102"}).
		Return(domain.SeenIncidentSet{"101": now.Add(-time.Hour)}, nil)
	repo.EXPECT().
		MarkSeen(gomock.Any(), []string{"102"}, now).
		Return(nil)

	e := newTestEngine(t, repo, now)

	got, err := e.Decide(ctx, []domain.IncidentRecord{incidentAt("101", now), incidentAt("102", now)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Outcome != domain.OutcomeDispatched {
		t.Errorf("outcome: got %v, want %v", got.Outcome, domain.OutcomeDispatched)
	}
	if len(got.ToNotify) != 1 || got.ToNotify[0].ID != "102" {
		t.Errorf("to notify: got %v, want [102]", domain.IncidentIDs(got.ToNotify))
	}
}

func TestEngine_DecideSuppressedDoesNotMark(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockSeenIncidentRepository(ctrl)

	now := shiftEnd.Add(time.Hour)

	repo.EXPECT().
		Lookup(gomock.Any(), []string{"201"}).
		Return(domain.NewSeenIncidentSet(), nil)
	repo.EXPECT().MarkSeen(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	e := newTestEngine(t, repo, now)

	got, err := e.Decide(context.Background(), []domain.IncidentRecord{incidentAt("201", now)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Outcome != domain.OutcomeSuppressed {
		t.Errorf("outcome: got %v, want %v", got.Outcome, domain.OutcomeSuppressed)
	}
	if len(got.ToNotify) != 0 {
		t.Errorf("to notify: got %v, want empty", domain.IncidentIDs(got.ToNotify))
	}
}

func TestEngine_DecideSkipsMalformedAndRepeated(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockSeenIncidentRepository(ctrl)

	now := shiftStart.Add(time.Hour)

	missingLocation := incidentAt("2", now)
	missingLocation.PrimaryLocation = ""

	repo.EXPECT().
		Lookup(gomock.Any(), []string{"1", "3"}).
		Return(domain.NewSeenIncidentSet(), nil)
	repo.EXPECT().
		MarkSeen(gomock.Any(), []string{"1", "3"}, now).
		Return(nil)

	e := newTestEngine(t, repo, now)

	got, err := e.Decide(context.Background(), []domain.IncidentRecord{
		incidentAt("1", now),
		missingLocation,
		incidentAt("1", now),
		incidentAt("3", now),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Candidates != 4 {
		t.Errorf("candidates: got %d, want 4", got.Candidates)
	}
	if len(got.ToNotify) != 2 {
		t.Errorf("to notify: got %v, want [1 3]", domain.IncidentIDs(got.ToNotify))
	}
}

func TestEngine_DecideLookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockSeenIncidentRepository(ctrl)

	lookupErr := errors.New("connection refused")
	repo.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, lookupErr)

	e := newTestEngine(t, repo, shiftStart.Add(time.Hour))

	_, err := e.Decide(context.Background(), []domain.IncidentRecord{incidentAt("1", shiftStart)})
	if !errors.Is(err, lookupErr) {
		t.Errorf("error: got %v, want wrapped %v", err, lookupErr)
	}
}

func TestEngine_DecideMarkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockSeenIncidentRepository(ctrl)

	markErr := errors.New("read only replica")
	repo.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(domain.NewSeenIncidentSet(), nil)
	repo.EXPECT().MarkSeen(gomock.Any(), gomock.Any(), gomock.Any()).Return(markErr)

	e := newTestEngine(t, repo, shiftStart.Add(time.Hour))

	got, err := e.Decide(context.Background(), []domain.IncidentRecord{incidentAt("1", shiftStart)})
	if !errors.Is(err, markErr) {
		t.Errorf("error: got %v, want wrapped %v", err, markErr)
	}
	if got != nil {
		t.Errorf("result: got %+v, want nil", got)
	}
}

func TestEngine_DecideWithoutRoster(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockSeenIncidentRepository(ctrl)

	repo.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(domain.NewSeenIncidentSet(), nil)

	e := NewEngine(NewState(), repo, GateBatch)
	e.now = func() time.Time { return shiftStart.Add(time.Hour) }

	got, err := e.Decide(context.Background(), []domain.IncidentRecord{incidentAt("1", shiftStart)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Outcome != domain.OutcomeSuppressed {
		t.Errorf("outcome: got %v, want %v", got.Outcome, domain.OutcomeSuppressed)
	}
}
