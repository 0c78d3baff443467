//go:build !gcloud

package decisionrecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

const cycleMeasurement = "poll_cycle"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DecisionRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "decision recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, decision recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "decision recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

func (r *influxDBRecorder) RecordCycle(ctx context.Context, record domain.CycleRecord) error {
	if err := r.writeAPI.WritePoint(ctx, cyclePoint(record)); err != nil {
		slog.WarnContext(ctx, "failed to write poll cycle to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
			slog.String("outcome", record.Outcome.String()),
		)
	}

	return nil
}

func cyclePoint(record domain.CycleRecord) *write.Point {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	polledAt := record.PolledAt
	if polledAt.IsZero() {
		polledAt = time.Now()
	}

	return influxdb2.NewPoint(
		cycleMeasurement,
		map[string]string{
			"run_id":  runID,
			"outcome": record.Outcome.String(),
		},
		map[string]any{
			"candidate_count": record.CandidateCount,
			"new_count":       record.NewCount,
			"notified_count":  record.NotifiedCount,
			"on_duty":         record.OnDuty,
			"roster_windows":  record.RosterWindows,
		},
		polledAt,
	)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
