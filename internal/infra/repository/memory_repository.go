package repository

import (
	"context"
	"sync"
	"time"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

// MemorySeenRepository keeps seen ids in process memory. Entries older than
// the ttl are evicted on every write and ignored on read.
type MemorySeenRepository struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewMemorySeenRepository(ttl time.Duration) (*MemorySeenRepository, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	return &MemorySeenRepository{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}, nil
}

func (r *MemorySeenRepository) Lookup(_ context.Context, ids []string) (domain.SeenIncidentSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	out := domain.NewSeenIncidentSet()
	for _, id := range ids {
		markedAt, ok := r.seen[id]
		if !ok || r.expired(markedAt, now) {
			continue
		}
		out[id] = markedAt
	}

	return out, nil
}

func (r *MemorySeenRepository) MarkSeen(_ context.Context, ids []string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if markedAt, ok := r.seen[id]; ok && !r.expired(markedAt, at) {
			continue
		}
		r.seen[id] = at
	}

	r.evictLocked(r.now())
	return nil
}

// Len returns the number of retained ids, expired ones included until the next write.
func (r *MemorySeenRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func (r *MemorySeenRepository) expired(markedAt, now time.Time) bool {
	return now.Sub(markedAt) > r.ttl
}

func (r *MemorySeenRepository) evictLocked(now time.Time) {
	for id, markedAt := range r.seen {
		if r.expired(markedAt, now) {
			delete(r.seen, id)
		}
	}
}
