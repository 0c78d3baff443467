package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

const seenKeyPrefix = "dispatch:seen:"

type seenRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSeenRepository stores seen incident ids as individual keys expiring after ttl.
func NewSeenRepository(client *redis.Client, ttl time.Duration) (domain.SeenIncidentRepository, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	return &seenRepository{
		client: client,
		ttl:    ttl,
	}, nil
}

func seenKey(id string) string {
	return seenKeyPrefix + id
}

func (r *seenRepository) Lookup(ctx context.Context, ids []string) (domain.SeenIncidentSet, error) {
	seen := domain.NewSeenIncidentSet()
	if len(ids) == 0 {
		return seen, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, seenKey(id))
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read seen marks: %w", err)
	}

	for i, v := range vals {
		if v == nil {
			continue
		}

		raw, ok := v.(string)
		if !ok {
			return nil, ErrInvalidSeenData
		}

		markedAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			// The key exists, so the id still counts as seen.
			slog.WarnContext(ctx, "unreadable seen mark",
				slog.String("incident_id", ids[i]),
				slog.String("error", err.Error()),
			)
		}
		seen[ids[i]] = markedAt
	}

	return seen, nil
}

func (r *seenRepository) MarkSeen(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	value := at.UTC().Format(time.RFC3339Nano)

	pipe := r.client.TxPipeline()
	for _, id := range ids {
		pipe.SetNX(ctx, seenKey(id), value, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write seen marks: %w", err)
	}
	return nil
}
