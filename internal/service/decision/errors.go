package decision

import "errors"

var ErrUnknownGateMode = errors.New("unknown gate mode")
