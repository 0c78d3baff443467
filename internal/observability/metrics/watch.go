package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	watchMeterName = "dispatch.watch"
)

type WatchMetrics struct {
	pollsTotal         metric.Int64Counter
	pollDuration       metric.Float64Histogram
	feedRequests       metric.Int64Counter
	newIncidents       metric.Int64Counter
	notificationsTotal metric.Int64Counter
	rosterRefreshes    metric.Int64Counter
	rosterWindows      metric.Int64Gauge
	droppedIncidents   metric.Int64Counter
}

func NewWatchMetrics() (*WatchMetrics, error) {
	meter := otel.Meter(watchMeterName)

	pollsTotal, err := meter.Int64Counter(
		"watch_polls_total",
		metric.WithDescription("Polling cycles by outcome"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	pollDuration, err := meter.Float64Histogram(
		"watch_poll_duration_seconds",
		metric.WithDescription("Duration of one polling cycle"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	feedRequests, err := meter.Int64Counter(
		"watch_feed_requests_total",
		metric.WithDescription("Requests sent to the incident feed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	newIncidents, err := meter.Int64Counter(
		"watch_new_incidents_total",
		metric.WithDescription("Incidents not seen before, by gate result"),
		metric.WithUnit("{incident}"),
	)
	if err != nil {
		return nil, err
	}

	notificationsTotal, err := meter.Int64Counter(
		"watch_notifications_total",
		metric.WithDescription("Notification deliveries by result"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	rosterRefreshes, err := meter.Int64Counter(
		"watch_roster_refreshes_total",
		metric.WithDescription("Roster refreshes by result"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, err
	}

	rosterWindows, err := meter.Int64Gauge(
		"watch_roster_windows",
		metric.WithDescription("Shift windows in the current roster"),
		metric.WithUnit("{window}"),
	)
	if err != nil {
		return nil, err
	}

	droppedIncidents, err := meter.Int64Counter(
		"watch_dropped_incidents_total",
		metric.WithDescription("Feed records dropped as malformed or repeated"),
		metric.WithUnit("{incident}"),
	)
	if err != nil {
		return nil, err
	}

	return &WatchMetrics{
		pollsTotal:         pollsTotal,
		pollDuration:       pollDuration,
		feedRequests:       feedRequests,
		newIncidents:       newIncidents,
		notificationsTotal: notificationsTotal,
		rosterRefreshes:    rosterRefreshes,
		rosterWindows:      rosterWindows,
		droppedIncidents:   droppedIncidents,
	}, nil
}

func (m *WatchMetrics) RecordPoll(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.pollsTotal.Add(ctx, 1, attrs)
	m.pollDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *WatchMetrics) RecordFeedRequest(ctx context.Context, result string) {
	m.feedRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}

func (m *WatchMetrics) RecordNewIncidents(ctx context.Context, count int, onDuty bool) {
	if count == 0 {
		return
	}
	m.newIncidents.Add(ctx, int64(count), metric.WithAttributes(
		attribute.Bool("on_duty", onDuty),
	))
}

func (m *WatchMetrics) RecordNotification(ctx context.Context, result string) {
	m.notificationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}

func (m *WatchMetrics) RecordDroppedIncidents(ctx context.Context, count int) {
	if count == 0 {
		return
	}
	m.droppedIncidents.Add(ctx, int64(count))
}

func (m *WatchMetrics) RecordRosterRefresh(ctx context.Context, result string, windows int) {
	m.rosterRefreshes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
	if result == "success" {
		m.rosterWindows.Record(ctx, int64(windows))
	}
}
