package domain

import (
	"errors"
	"slices"
	"time"
)

// IncidentRecord is a single dispatch event from the incident feed.
// Identity is ID.
type IncidentRecord struct {
	ID              string
	RespondingUnits []string
	PrimaryLocation string
	// CrossStreets is empty when the feed omits it.
	CrossStreets string
	EventType    string
	AlarmLevel   string
	DispatchTime time.Time
}

func (r IncidentRecord) HasCrossStreets() bool {
	return r.CrossStreets != ""
}

func (r IncidentRecord) RespondedBy(unitID string) bool {
	return slices.Contains(r.RespondingUnits, unitID)
}

// Validate reports every missing required field of the record.
func (r IncidentRecord) Validate() error {
	var errs []error
	if r.ID == "" {
		errs = append(errs, ErrMissingIncidentID)
	}
	if r.PrimaryLocation == "" {
		errs = append(errs, ErrMissingLocation)
	}
	if r.EventType == "" {
		errs = append(errs, ErrMissingEventType)
	}
	if r.DispatchTime.IsZero() {
		errs = append(errs, ErrMissingDispatchTime)
	}
	return errors.Join(errs...)
}

func IncidentIDs(records []IncidentRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}
