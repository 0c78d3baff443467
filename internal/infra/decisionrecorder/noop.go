package decisionrecorder

import (
	"context"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.DecisionRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordCycle(_ context.Context, _ domain.CycleRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
