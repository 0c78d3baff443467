//go:build gcloud

package decisionrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt     time.Time `bigquery:"recorded_at"`
	PolledAt       time.Time `bigquery:"polled_at"`
	RunID          string    `bigquery:"run_id"`
	Outcome        string    `bigquery:"outcome"`
	CandidateCount int64     `bigquery:"candidate_count"`
	NewCount       int64     `bigquery:"new_count"`
	NotifiedCount  int64     `bigquery:"notified_count"`
	OnDuty         bool      `bigquery:"on_duty"`
	RosterWindows  int64     `bigquery:"roster_windows"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DecisionRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "decision recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, decision recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, decision recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "decision recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
	}, nil
}

func (r *bigQueryRecorder) RecordCycle(ctx context.Context, record domain.CycleRecord) error {
	row := &bigQueryRecord{
		RecordedAt:     time.Now(),
		PolledAt:       record.PolledAt,
		RunID:          record.RunID,
		Outcome:        record.Outcome.String(),
		CandidateCount: int64(record.CandidateCount),
		NewCount:       int64(record.NewCount),
		NotifiedCount:  int64(record.NotifiedCount),
		OnDuty:         record.OnDuty,
		RosterWindows:  int64(record.RosterWindows),
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert poll cycle to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
