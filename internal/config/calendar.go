package config

import (
	"os"
	"strings"
)

type CalendarSourceKind string

const (
	CalendarSourceGoogle CalendarSourceKind = "google"
	CalendarSourceICS    CalendarSourceKind = "ics"
	CalendarSourceFile   CalendarSourceKind = "file"
)

type CalendarConfig struct {
	Source           CalendarSourceKind
	GoogleAPIKey     string
	GoogleCalendarID string
	ICSURL           string
	FilePath         string
}

func LoadCalendarConfig() *CalendarConfig {
	source := CalendarSourceKind(strings.ToLower(os.Getenv("CALENDAR_SOURCE")))
	if source == "" {
		source = CalendarSourceGoogle
	}

	return &CalendarConfig{
		Source:           source,
		GoogleAPIKey:     os.Getenv("GOOGLE_CAL_API_KEY"),
		GoogleCalendarID: os.Getenv("GOOGLE_CAL_CAL_ID"),
		ICSURL:           os.Getenv("ICS_URL"),
		FilePath:         os.Getenv("CALENDAR_FILE"),
	}
}

func (c *CalendarConfig) Validate() error {
	switch c.Source {
	case CalendarSourceGoogle:
		if c.GoogleAPIKey == "" || c.GoogleCalendarID == "" {
			return ErrGoogleCalendarMissing
		}
	case CalendarSourceICS:
		if c.ICSURL == "" {
			return ErrICSURLMissing
		}
	case CalendarSourceFile:
		if c.FilePath == "" {
			return ErrCalendarFileMissing
		}
	default:
		return ErrUnknownCalendarSource
	}
	return nil
}
