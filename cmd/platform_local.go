//go:build !gcloud

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

func initSink(_ context.Context, cfg *config.Config) (domain.NotificationSink, func() error, error) {
	if cfg.Notify.SlackWebhookURL == "" {
		slog.Warn("SLACK_WEBHOOK_URL not set, notifications will only be logged")

		return notifier.LogSink{}, nil, nil
	}

	slog.Info("notification sink initialized",
		slog.String("type", "slack_webhook"),
	)

	return notifier.NewSlackWebhook(cfg.Notify.SlackWebhookURL), nil, nil
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "dispatch-watch"
	}

	env := logging.EnvDev
	if cfg.Environment != "" {
		env = logging.Environment(cfg.Environment)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		LogLevel:      cfg.LogLevel,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("dispatch-watch"),
	})
}
