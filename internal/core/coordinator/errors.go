package coordinator

import "errors"

var errTimerMissing = errors.New("loader returned no timer")
