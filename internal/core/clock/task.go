// Package clock holds the per-step clocks a timer machine drives. Tasks do not
// own goroutines or tickers: the event loop pushes elapsed time into them
// through Tick, one call per tick.
package clock

import "time"

// State is the lifecycle of a task
type State int

const (
	StateReset State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "reset"
	}
}

func (s State) IsRunning() bool { return s == StateRunning }

// Master receives task output. A task reports completion at most once.
type Master interface {
	OnTick(task Task, value time.Duration)
	OnTaskDone(task Task)
}

// TickListener observes every value a task reports. Values are not counters:
// the same second may be reported twice.
type TickListener interface {
	OnNewTime(value time.Duration)
}

// TickListenerFunc adapts a function to TickListener
type TickListenerFunc func(value time.Duration)

func (f TickListenerFunc) OnNewTime(value time.Duration) { f(value) }

// Task is one step's clock
type Task interface {
	Start()
	Pause()
	// Stop halts the task for good without reporting completion
	Stop()
	Tick(elapsed time.Duration)
	// Adjust adds amount when add is true and subtracts it otherwise. The
	// result never drops below zero.
	Adjust(amount time.Duration, add bool)
	// Set replaces the clock value
	Set(value time.Duration)
	State() State
	// Current is the remaining time for a countdown and the elapsed time for
	// a stopwatch
	Current() time.Duration
	AddTickListener(l TickListener)
}

// base carries the bookkeeping shared by every task
type base struct {
	master    Master
	state     State
	listeners []TickListener
}

func (b *base) State() State { return b.state }

func (b *base) AddTickListener(l TickListener) {
	b.listeners = append(b.listeners, l)
}

func (b *base) emit(task Task, value time.Duration) {
	if b.master != nil {
		b.master.OnTick(task, value)
	}
	for _, l := range b.listeners {
		l.OnNewTime(value)
	}
}
