package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=decision_recorder.go -destination=decision_recorder_mock.go -package=domain

// CycleOutcome is the terminal state of one polling cycle.
type CycleOutcome string

const (
	OutcomeNoUpdates  CycleOutcome = "no_updates"
	OutcomeDispatched CycleOutcome = "dispatched"
	OutcomeSuppressed CycleOutcome = "suppressed"
	OutcomeFailed     CycleOutcome = "failed"
)

func (o CycleOutcome) String() string {
	return string(o)
}

type CycleRecord struct {
	RunID          string
	PolledAt       time.Time
	Outcome        CycleOutcome
	CandidateCount int
	NewCount       int
	NotifiedCount  int
	OnDuty         bool
	RosterWindows  int
}

type DecisionRecorder interface {
	RecordCycle(ctx context.Context, record CycleRecord) error
	Close() error
}
