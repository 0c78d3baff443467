//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/dispatch-watch/internal/config"
	"github.com/KasumiMercury/dispatch-watch/internal/domain"
	"github.com/KasumiMercury/dispatch-watch/internal/infra/notifier"
	"github.com/KasumiMercury/dispatch-watch/internal/observability"
	"github.com/KasumiMercury/dispatch-watch/internal/observability/logging"
)

func initSink(ctx context.Context, cfg *config.Config) (domain.NotificationSink, func() error, error) {
	sink, err := notifier.NewCloudTasksSink(ctx, notifier.CloudTasksConfig{
		ProjectID:  cfg.Notify.GCloudProjectID,
		LocationID: cfg.Notify.GCloudLocationID,
		QueueID:    cfg.Notify.GCloudQueueID,
		WebhookURL: cfg.Notify.SlackWebhookURL,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("notification sink initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.Notify.GCloudProjectID),
		slog.String("location", cfg.Notify.GCloudLocationID),
		slog.String("queue", cfg.Notify.GCloudQueueID),
	)

	cleanup := func() error {
		if err := sink.Close(); err != nil {
			slog.Warn("failed to close cloud tasks client", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return sink, cleanup, nil
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "dispatch-watch"
	}

	env := logging.EnvProd
	if cfg.Environment != "" {
		env = logging.Environment(cfg.Environment)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = cfg.Notify.GCloudProjectID
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		LogLevel:      cfg.LogLevel,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("dispatch-watch"),
	})
}
