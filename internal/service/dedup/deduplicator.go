package dedup

import "github.com/KasumiMercury/dispatch-watch/internal/domain"

// SelectNew returns the candidates whose id is not in seen, in input order.
// It never mutates seen; the caller marks the accepted subset afterwards.
func SelectNew(candidates []domain.IncidentRecord, seen domain.SeenIncidentSet) []domain.IncidentRecord {
	if len(candidates) == 0 {
		return []domain.IncidentRecord{}
	}

	// Bootstrap: nothing seen yet, so the whole batch is new.
	if seen.Len() == 0 {
		out := make([]domain.IncidentRecord, len(candidates))
		copy(out, candidates)
		return out
	}

	out := make([]domain.IncidentRecord, 0, len(candidates))
	for _, c := range candidates {
		if !seen.Has(c.ID) {
			out = append(out, c)
		}
	}
	return out
}
