package clock

import "time"

// Countdown counts a fixed length down to zero and then reports completion
type Countdown struct {
	base
	remaining time.Duration
}

// NewCountdown creates a countdown of length reporting to master
func NewCountdown(master Master, length time.Duration) *Countdown {
	return &Countdown{
		base:      base{master: master},
		remaining: length,
	}
}

// Start begins or resumes counting and reports the full remaining time
func (c *Countdown) Start() {
	c.state = StateRunning
	c.emit(c, c.remaining)
}

func (c *Countdown) Pause() {
	if c.state == StateRunning {
		c.state = StatePaused
	}
}

func (c *Countdown) Stop() {
	c.state = StateReset
}

// Tick subtracts elapsed. Reaching zero moves the task to Reset and reports
// completion; later ticks are ignored.
func (c *Countdown) Tick(elapsed time.Duration) {
	if c.state != StateRunning {
		return
	}
	c.remaining -= elapsed
	if c.remaining <= 0 {
		c.remaining = 0
		c.state = StateReset
		if c.master != nil {
			c.master.OnTaskDone(c)
		}
		return
	}
	c.emit(c, c.remaining)
}

func (c *Countdown) Adjust(amount time.Duration, add bool) {
	if add {
		c.remaining += amount
	} else {
		c.remaining -= amount
	}
	c.remaining = max(c.remaining, 0)
	c.emit(c, c.remaining)
}

func (c *Countdown) Set(value time.Duration) {
	c.remaining = max(value, 0)
	c.emit(c, c.remaining)
}

func (c *Countdown) Current() time.Duration { return c.remaining }
