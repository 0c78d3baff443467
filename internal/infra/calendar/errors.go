package calendar

import "errors"

var (
	ErrUnexpectedStatus = errors.New("unexpected status code from calendar")
	ErrEmptyCalendar    = errors.New("empty calendar payload")
	ErrMissingTime      = errors.New("calendar entry has no usable time")
)
