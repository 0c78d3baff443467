package repository

import "errors"

var (
	ErrInvalidSeenData = errors.New("invalid seen incident data")
	ErrInvalidTTL      = errors.New("seen incident ttl must be positive")
)
