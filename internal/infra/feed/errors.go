package feed

import "errors"

var (
	ErrUnexpectedStatus = errors.New("unexpected status code from incident feed")
	ErrMalformedFeed    = errors.New("malformed incident feed document")
)
