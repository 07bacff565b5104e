package machine

import (
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/model"
)

// Listener receives everything a machine reports. Calls arrive on the
// goroutine that drives the machine.
type Listener interface {
	Begin(id int)
	Started(id int, pos model.Position)
	Paused(id int)
	Updated(id int, value time.Duration)
	Finished(id int)
	End(id int, forced bool)

	Beep(id int)
	NotifyHalf(id int, option int)
	CountRead(id int, content string)
}
