package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	defaultPort          = "8080"
	defaultTimezone      = "America/Toronto"
	defaultResponderName = "Our responder"
)

type Config struct {
	Port          string
	LogLevel      slog.Level
	Environment   string
	Location      *time.Location
	ResponderName string
	Feed          *FeedConfig
	Calendar      *CalendarConfig
	Notify        *NotifyConfig
	Seen          *SeenConfig
	Redis         *RedisConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = defaultTimezone
	}
	location, err := time.LoadLocation(tz)
	if err != nil {
		return nil, ErrInvalidTimezone
	}

	responder := strings.TrimSpace(os.Getenv("RESPONDER_NAME"))
	if responder == "" {
		responder = defaultResponderName
	}

	feedConfig, err := LoadFeedConfig()
	if err != nil {
		return nil, err
	}

	seenConfig, err := LoadSeenConfig()
	if err != nil {
		return nil, err
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:          port,
		LogLevel:      parseLogLevel(os.Getenv("LOG_LEVEL")),
		Environment:   os.Getenv("ENV"),
		Location:      location,
		ResponderName: responder,
		Feed:          feedConfig,
		Calendar:      LoadCalendarConfig(),
		Notify:        LoadNotifyConfig(),
		Seen:          seenConfig,
		Redis:         redisConfig,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
