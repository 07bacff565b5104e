// Package machine runs a single timer: it walks the timeline, builds a clock
// for every leaf and reports progress to a Listener.
package machine

import (
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/clock"
	"github.com/penwyp/go-interval-timer/internal/core/constants"
	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/core/timeline"
	"github.com/penwyp/go-interval-timer/internal/util"
)

// Machine is the state machine of one running timer. It is not safe for
// concurrent use.
type Machine struct {
	timer    *model.Timer
	listener Listener
	clock    util.Clock
	logger   util.LoggerInterface

	current   model.Position
	last      model.Position
	task      clock.Task
	beginTime time.Time
}

// New creates a machine for t. The timer must not change while the machine
// runs. A nil clk falls back to the system clock.
func New(t *model.Timer, listener Listener, clk util.Clock) *Machine {
	if clk == nil {
		clk = util.SystemClock{}
	}
	m := &Machine{
		timer:    t,
		listener: listener,
		clock:    clk,
		logger:   util.Named("machine").With(util.F("timer_id", t.ID)),
		current:  model.Start(),
		last:     model.End(),
	}
	if len(t.Steps) > 0 {
		m.current = timeline.FirstIndex(t)
		m.last = timeline.LastIndex(t)
	}
	return m
}

func (m *Machine) ID() int                    { return m.timer.ID }
func (m *Machine) Timer() *model.Timer        { return m.timer }
func (m *Machine) Current() model.Position    { return m.current }
func (m *Machine) BeginTime() time.Time       { return m.beginTime }
func (m *Machine) CurrentStep() *model.Leaf   { return timeline.StepAt(m.timer, m.current) }
func (m *Machine) IsAtFirst() bool            { return m.current == m.firstIndex() }
func (m *Machine) IsAtLast() bool             { return m.current == m.last }
func (m *Machine) LastIndex() model.Position  { return m.last }
func (m *Machine) FirstIndex() model.Position { return m.firstIndex() }

func (m *Machine) firstIndex() model.Position {
	if len(m.timer.Steps) == 0 {
		return model.Start()
	}
	return timeline.FirstIndex(m.timer)
}

// State is the state of the current clock, Reset before the first start
func (m *Machine) State() clock.State {
	if m.task == nil {
		return clock.StateReset
	}
	return m.task.State()
}

// Value is the current clock reading: remaining time for a countdown,
// elapsed time for a stopwatch
func (m *Machine) Value() time.Duration {
	if m.task == nil {
		if leaf := m.CurrentStep(); leaf != nil {
			return leaf.Duration
		}
		return 0
	}
	return m.task.Current()
}

// Start begins the run or resumes a paused clock
func (m *Machine) Start() {
	if m.beginTime.IsZero() {
		m.beginTime = m.clock.Now()
		m.listener.Begin(m.timer.ID)
	}

	if m.task != nil {
		if !m.task.State().IsRunning() {
			m.listener.Started(m.timer.ID, m.current)
			m.task.Start()
		}
		return
	}

	leaf := m.CurrentStep()
	if leaf == nil {
		m.listener.End(m.timer.ID, false)
		return
	}
	m.task = m.newTask(m.current, leaf, false)
	m.listener.Started(m.timer.ID, m.current)
	m.task.Start()
}

func (m *Machine) Pause() {
	if m.task == nil {
		return
	}
	m.task.Pause()
	m.listener.Paused(m.timer.ID)
}

// Stop abandons the run and reports a forced end
func (m *Machine) Stop() {
	if m.task != nil {
		m.task.Stop()
		m.task = nil
	}
	m.listener.End(m.timer.ID, true)
}

// Tick forwards elapsed time to the current clock
func (m *Machine) Tick(elapsed time.Duration) {
	if m.task != nil {
		m.task.Tick(elapsed)
	}
}

// ToIndex jumps to pos. Invalid targets and the current position are ignored.
// The new clock only starts when the old one was running.
func (m *Machine) ToIndex(pos model.Position) {
	if !timeline.IsValid(m.timer, pos) || pos == m.current {
		m.logger.Debugf("Ignoring jump from %s to %s", m.current, pos)
		return
	}

	wasRunning := m.task != nil && m.task.State().IsRunning()
	if m.task != nil {
		m.task.Stop()
	}

	m.current = pos
	m.task = m.newTask(pos, timeline.StepAt(m.timer, pos), false)
	if wasRunning {
		m.listener.Started(m.timer.ID, pos)
		m.task.Start()
	}
}

// Adjust adds d to the current clock; negative values subtract
func (m *Machine) Adjust(d time.Duration) {
	if m.task != nil {
		m.task.Adjust(d, true)
	}
}

func (m *Machine) RewindOneMinute() {
	if m.task != nil {
		m.task.Adjust(constants.OneMinute, false)
	}
}

func (m *Machine) ToOneMinute() {
	if m.task != nil {
		m.task.Set(constants.OneMinute)
	}
}

// OnTick implements clock.Master
func (m *Machine) OnTick(task clock.Task, value time.Duration) {
	if task != m.task {
		return
	}
	m.listener.Updated(m.timer.ID, value)
}

// OnTaskDone implements clock.Master. It advances to the next leaf or ends
// the run.
func (m *Machine) OnTaskDone(task clock.Task) {
	if task != m.task {
		return
	}
	m.listener.Finished(m.timer.ID)

	if m.current == m.last {
		m.listener.End(m.timer.ID, false)
		return
	}

	next, _ := timeline.Next(m.timer.Steps, m.timer.Loop, m.current)
	leaf := timeline.StepAt(m.timer, next)
	if leaf == nil {
		m.listener.End(m.timer.ID, false)
		return
	}

	m.current = next
	m.task = m.newTask(next, leaf, true)
	m.listener.Started(m.timer.ID, next)
	m.task.Start()
}

// newTask builds the clock for leaf and wires its tick listeners. Speech for
// the following leaf is only warmed up on a natural step advance.
func (m *Machine) newTask(pos model.Position, leaf *model.Leaf, warmUp bool) clock.Task {
	id := m.timer.ID
	beep := clock.TickListenerFunc(func(time.Duration) { m.listener.Beep(id) })

	if leaf.IsHalt() {
		sw := clock.NewStopwatch(m)
		if leaf.Has(model.BehaviourBeep) {
			sw.AddTickListener(beep)
		}
		return sw
	}

	cd := clock.NewCountdown(m, leaf.Duration)
	for _, b := range leaf.Behaviours {
		switch action := b.(type) {
		case model.BeepAction:
			cd.AddTickListener(beep)
		case model.HalfAction:
			option := action.Option
			cd.AddTickListener(clock.NewHalfListener(leaf.Duration, func() {
				m.listener.NotifyHalf(id, option)
			}))
		case model.CountAction:
			cd.AddTickListener(clock.NewCountListener(action.Times, func(content string) {
				m.listener.CountRead(id, content)
			}))
		}
	}
	if warmUp && m.speaksAfter(pos) {
		cd.AddTickListener(clock.NewWarmUpListener(func() {
			m.listener.CountRead(id, "")
		}))
	}
	return cd
}

// speaksAfter reports whether the leaf following pos uses speech
func (m *Machine) speaksAfter(pos model.Position) bool {
	if pos.IsEnd() || pos == m.last || len(m.timer.Steps) == 0 {
		return false
	}
	next, _ := timeline.Next(m.timer.Steps, m.timer.Loop, pos)
	leaf := timeline.StepAt(m.timer, next)
	return leaf != nil && leaf.Speaks()
}
