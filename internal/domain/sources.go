package domain

import "context"

//go:generate mockgen -source=sources.go -destination=sources_mock.go -package=domain

// IncidentFeedSource pulls the current active-incident batch, already
// filtered to the configured responder unit.
type IncidentFeedSource interface {
	Fetch(ctx context.Context) ([]IncidentRecord, error)
}

// CalendarSource pulls the base duty shifts.
type CalendarSource interface {
	Fetch(ctx context.Context) ([]BaseRecurringEvent, error)
}

// NotificationSink delivers a rendered message.
type NotificationSink interface {
	Send(ctx context.Context, message string) error
}
