package domain

import "errors"

var (
	ErrMissingIncidentID    = errors.New("incident id is required")
	ErrMissingLocation      = errors.New("incident primary location is required")
	ErrMissingEventType     = errors.New("incident event type is required")
	ErrMissingDispatchTime  = errors.New("incident dispatch time is required")
	ErrUnusableShiftBounds  = errors.New("shift event has no usable start/end pair")
	ErrShiftNeverAligns     = errors.New("shift event never reaches the reference month")
	ErrNotificationRejected = errors.New("notification sink rejected message")
)
