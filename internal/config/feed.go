package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	feedURLEnv      = "FEED_URL"
	unitIDEnv       = "UNIT_ID"
	pollIntervalEnv = "POLL_INTERVAL_IN_MINS"
	gateModeEnv     = "GATE_MODE"

	defaultPollIntervalMinutes = 5
	defaultGateMode            = "batch"
)

type FeedConfig struct {
	URL          string
	UnitID       string
	PollInterval time.Duration
	GateMode     string
}

func LoadFeedConfig() (*FeedConfig, error) {
	minutes := defaultPollIntervalMinutes
	if v := os.Getenv(pollIntervalEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidPollInterval
		}
		minutes = parsed
	}

	gateMode := strings.ToLower(strings.TrimSpace(os.Getenv(gateModeEnv)))
	if gateMode == "" {
		gateMode = defaultGateMode
	}

	return &FeedConfig{
		URL:          os.Getenv(feedURLEnv),
		UnitID:       strings.TrimSpace(os.Getenv(unitIDEnv)),
		PollInterval: time.Duration(minutes) * time.Minute,
		GateMode:     gateMode,
	}, nil
}

func (c *FeedConfig) Validate() error {
	if c.URL == "" {
		return ErrFeedURLMissing
	}
	if c.UnitID == "" {
		return ErrUnitIDMissing
	}
	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	if c.GateMode != "batch" && c.GateMode != "dispatch" {
		return ErrInvalidGateMode
	}
	return nil
}
