//go:build gcloud

package observability

import (
	"context"

	mexporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/metric"
	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func newExporters(ctx context.Context, cfg Config) (sdktrace.SpanExporter, sdkmetric.Reader, error) {
	if cfg.GCPProjectID == "" {
		return nil, nil, nil
	}

	spanExporter, err := texporter.New(texporter.WithProjectID(cfg.GCPProjectID))
	if err != nil {
		return nil, nil, err
	}

	metricExporter, err := mexporter.New(mexporter.WithProjectID(cfg.GCPProjectID))
	if err != nil {
		_ = spanExporter.Shutdown(ctx)
		return nil, nil, err
	}

	return spanExporter, sdkmetric.NewPeriodicReader(metricExporter), nil
}
