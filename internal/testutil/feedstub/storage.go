package feedstub

import (
	"net/http"
	"sync"
)

// EventStorage holds the incidents the stub feed currently reports.
type EventStorage struct {
	mu         sync.RWMutex
	events     []Event
	requests   int
	failures   int
	failStatus int
}

func NewEventStorage() *EventStorage {
	return &EventStorage{}
}

func (s *EventStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.requests = 0
	s.failures = 0
}

// Seed replaces the reported incidents.
func (s *EventStorage) Seed(events []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]Event(nil), events...)
}

// Add appends incidents to the ones already reported.
func (s *EventStorage) Add(events ...Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
}

// FailNext makes the next count requests answer with status.
func (s *EventStorage) FailNext(count, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		status = http.StatusServiceUnavailable
	}
	s.failures = count
	s.failStatus = status
}

func (s *EventStorage) Requests() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests
}

// serve records a request and returns a failure status or a snapshot of the events.
func (s *EventStorage) serve() (int, []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests++
	if s.failures > 0 {
		s.failures--
		return s.failStatus, nil
	}

	return http.StatusOK, append([]Event(nil), s.events...)
}
