package config

import "errors"

var (
	ErrRedisAddrMissing      = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB        = errors.New("REDIS_DB must be a valid integer")
	ErrFeedURLMissing        = errors.New("FEED_URL is required")
	ErrUnitIDMissing         = errors.New("UNIT_ID is required")
	ErrInvalidPollInterval   = errors.New("POLL_INTERVAL_IN_MINS must be a positive integer")
	ErrInvalidGateMode       = errors.New("GATE_MODE must be batch or dispatch")
	ErrInvalidTimezone       = errors.New("TIMEZONE must be an IANA time zone name")
	ErrUnknownCalendarSource = errors.New("CALENDAR_SOURCE must be google, ics or file")
	ErrGoogleCalendarMissing = errors.New("GOOGLE_CAL_API_KEY and GOOGLE_CAL_CAL_ID are required for the google calendar source")
	ErrICSURLMissing         = errors.New("ICS_URL is required for the ics calendar source")
	ErrCalendarFileMissing   = errors.New("CALENDAR_FILE is required for the file calendar source")
	ErrUnknownSeenStore      = errors.New("SEEN_STORE must be memory or redis")
	ErrInvalidSeenTTL        = errors.New("SEEN_TTL_HOURS must be a positive integer")
)
