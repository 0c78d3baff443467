package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=seen_repository.go -destination=seen_repository_mock.go -package=domain

// SeenIncidentRepository stores the ids already notified. Entries expire
// after the configured retention so the set stays bounded.
type SeenIncidentRepository interface {
	// Lookup returns the subset of ids that are currently marked seen.
	Lookup(ctx context.Context, ids []string) (SeenIncidentSet, error)
	MarkSeen(ctx context.Context, ids []string, at time.Time) error
}
