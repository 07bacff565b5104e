package clock

import "time"

// Stopwatch counts up until it is moved on manually. It never completes.
type Stopwatch struct {
	base
	elapsed time.Duration
}

// NewStopwatch creates a stopwatch reporting to master
func NewStopwatch(master Master) *Stopwatch {
	return &Stopwatch{base: base{master: master}}
}

func (s *Stopwatch) Start() {
	s.state = StateRunning
	s.emit(s, s.elapsed)
}

func (s *Stopwatch) Pause() {
	if s.state == StateRunning {
		s.state = StatePaused
	}
}

func (s *Stopwatch) Stop() {
	s.state = StateReset
}

func (s *Stopwatch) Tick(elapsed time.Duration) {
	if s.state != StateRunning {
		return
	}
	s.elapsed += elapsed
	s.emit(s, s.elapsed)
}

func (s *Stopwatch) Adjust(amount time.Duration, add bool) {
	if add {
		s.elapsed += amount
	} else {
		s.elapsed -= amount
	}
	s.elapsed = max(s.elapsed, 0)
	s.emit(s, s.elapsed)
}

func (s *Stopwatch) Set(value time.Duration) {
	s.elapsed = max(value, 0)
	s.emit(s, s.elapsed)
}

func (s *Stopwatch) Current() time.Duration { return s.elapsed }
