package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const watchTracerName = "github.com/KasumiMercury/dispatch-watch/internal/service/watch"

func WatchTracer() trace.Tracer {
	return otel.Tracer(watchTracerName)
}

func StartPollSpan(ctx context.Context, runID string) (context.Context, trace.Span) {
	return WatchTracer().Start(ctx, "watch.poll",
		trace.WithAttributes(
			attribute.String("run_id", runID),
		),
	)
}

func StartRosterRefreshSpan(ctx context.Context, month string) (context.Context, trace.Span) {
	return WatchTracer().Start(ctx, "watch.roster_refresh",
		trace.WithAttributes(
			attribute.String("roster.month", month),
		),
	)
}

func StartSourceSpan(ctx context.Context, source string) (context.Context, trace.Span) {
	return WatchTracer().Start(ctx, "watch.fetch."+source,
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordPollResult(span trace.Span, outcome string, candidateCount, newCount, notifiedCount int, err error) {
	span.SetAttributes(
		attribute.String("poll.outcome", outcome),
		attribute.Int("poll.candidate_count", candidateCount),
		attribute.Int("poll.new_count", newCount),
		attribute.Int("poll.notified_count", notifiedCount),
	)
	RecordError(span, err)
}

func RecordRosterRefreshResult(span trace.Span, baseEventCount, windowCount int, err error) {
	span.SetAttributes(
		attribute.Int("roster.base_event_count", baseEventCount),
		attribute.Int("roster.window_count", windowCount),
	)
	RecordError(span, err)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
