package domain

import "time"

// SeenIncidentSet holds the incident ids already acted on, keyed by id,
// with the instant each id was marked seen.
type SeenIncidentSet map[string]time.Time

func NewSeenIncidentSet() SeenIncidentSet {
	return make(SeenIncidentSet)
}

func (s SeenIncidentSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s SeenIncidentSet) Len() int {
	return len(s)
}

// With returns a copy of s extended with ids marked at the given instant.
// Ids already present keep their original mark.
func (s SeenIncidentSet) With(ids []string, at time.Time) SeenIncidentSet {
	out := make(SeenIncidentSet, len(s)+len(ids))
	for id, t := range s {
		out[id] = t
	}
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			out[id] = at
		}
	}
	return out
}
