package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	seenStoreEnv = "SEEN_STORE"
	seenTTLEnv   = "SEEN_TTL_HOURS"

	SeenStoreMemory = "memory"
	SeenStoreRedis  = "redis"

	defaultSeenTTLHours = 720
)

type SeenConfig struct {
	Store string
	TTL   time.Duration
}

func LoadSeenConfig() (*SeenConfig, error) {
	store := strings.ToLower(os.Getenv(seenStoreEnv))
	if store == "" {
		store = SeenStoreMemory
	}

	hours := defaultSeenTTLHours
	if v := os.Getenv(seenTTLEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidSeenTTL
		}
		hours = parsed
	}

	return &SeenConfig{
		Store: store,
		TTL:   time.Duration(hours) * time.Hour,
	}, nil
}

func (c *SeenConfig) Validate() error {
	if c.Store != SeenStoreMemory && c.Store != SeenStoreRedis {
		return ErrUnknownSeenStore
	}
	if c.TTL <= 0 {
		return ErrInvalidSeenTTL
	}
	return nil
}

func (c *SeenConfig) UsesRedis() bool {
	return c.Store == SeenStoreRedis
}
