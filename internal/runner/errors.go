package runner

import "errors"

var ErrUnknownJob = errors.New("unknown job")
