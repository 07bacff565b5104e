// Package coordinator owns every running timer. It starts and stops timer
// machines, turns their events into presentation calls and completion
// records, and keeps the presentation mode in step with the registry.
//
// A Coordinator is not safe for concurrent use. All calls, including the
// done callbacks handed to Runner and Surface.Speak, must come from one
// goroutine.
package coordinator

import (
	"context"
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/clock"
	"github.com/penwyp/go-interval-timer/internal/core/machine"
	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/core/timeline"
	"github.com/penwyp/go-interval-timer/internal/util"
)

// Config tunes a Coordinator. Zero values pick inline execution and the
// system clock.
type Config struct {
	Runner Runner
	Clock  util.Clock
	// Strict panics on registry inconsistencies instead of logging them
	Strict bool
	// TwelveHour selects the clock style used in spoken times
	TwelveHour bool
}

// Info is a snapshot of one running timer
type Info struct {
	Timer     *model.Timer
	State     clock.State
	Position  model.Position
	Value     time.Duration
	BeginTime time.Time
}

type Coordinator struct {
	ctx     context.Context
	surface Surface
	loader  Loader
	records RecordAppender
	runner  Runner
	clock   util.Clock
	logger  util.LoggerInterface

	registry  *Registry
	listeners *listenerSet
	pending   map[int]bool

	mode        Mode
	dedicatedID int
	// active is set between PrepareForWork and Shutdown
	active bool
	// generation invalidates speech callbacks of earlier steps
	generation uint64
	twelveHour bool
}

// New creates a coordinator. ctx bounds loader and record calls.
func New(ctx context.Context, surface Surface, loader Loader, records RecordAppender, cfg Config) *Coordinator {
	if cfg.Runner == nil {
		cfg.Runner = InlineRunner{}
	}
	if cfg.Clock == nil {
		cfg.Clock = util.SystemClock{}
	}
	registry := NewRegistry()
	registry.Strict = cfg.Strict

	return &Coordinator{
		ctx:        ctx,
		surface:    surface,
		loader:     loader,
		records:    records,
		runner:     cfg.Runner,
		clock:      cfg.Clock,
		logger:     util.Named("coordinator"),
		registry:   registry,
		listeners:  newListenerSet(),
		pending:    make(map[int]bool),
		twelveHour: cfg.TwelveHour,
	}
}

func (c *Coordinator) Mode() Mode { return c.mode }

// Running reports whether id is in the registry
func (c *Coordinator) Running(id int) bool { return c.registry.Has(id) }

func (c *Coordinator) AddListener(id int, l Listener)    { c.listeners.add(id, l) }
func (c *Coordinator) RemoveListener(id int, l Listener) { c.listeners.remove(id, l) }
func (c *Coordinator) AddAllListener(l Listener)         { c.listeners.addAll(l) }
func (c *Coordinator) RemoveAllListener(l Listener)      { c.listeners.removeAll(l) }

// Info returns a snapshot of id
func (c *Coordinator) Info(id int) (Info, bool) {
	e := c.registry.Get(id)
	if e == nil {
		return Info{}, false
	}
	return infoOf(e), true
}

// Infos returns snapshots of every running timer in start order
func (c *Coordinator) Infos() []Info {
	ids := c.registry.IDs()
	out := make([]Info, 0, len(ids))
	for _, id := range ids {
		out = append(out, infoOf(c.registry.Get(id)))
	}
	return out
}

func infoOf(e *entry) Info {
	return Info{
		Timer:     e.timer,
		State:     e.machine.State(),
		Position:  e.machine.Current(),
		Value:     e.machine.Value(),
		BeginTime: e.machine.BeginTime(),
	}
}

// StartTimer starts or resumes id, jumping to pos first when pos is valid.
// Timers that are not running yet are loaded once; further starts while the
// load is in flight are dropped.
func (c *Coordinator) StartTimer(id int, pos *model.Position) {
	if e := c.registry.Get(id); e != nil {
		c.startWith(e, pos)
		return
	}
	if c.pending[id] {
		c.logger.Debugf("Timer %d is already loading", id)
		return
	}
	c.pending[id] = true

	var (
		timer *model.Timer
		err   error
	)
	ctx := context.WithValue(c.ctx, util.TimerIDKey, id)
	c.runner.Run(func() {
		timer, err = c.loader.LoadTimer(ctx, id)
	}, func() {
		delete(c.pending, id)
		c.onLoaded(id, timer, err, pos)
	})
}

func (c *Coordinator) onLoaded(id int, timer *model.Timer, err error, pos *model.Position) {
	if err == nil && timer == nil {
		err = errTimerMissing
	}
	if err == nil {
		err = timer.Validate()
	}
	if err != nil {
		c.logger.Errorf("Failed to load timer %d: %v", id, err)
		c.stopServiceIfEmpty()
		return
	}

	if e := c.registry.Get(id); e != nil {
		c.startWith(e, pos)
		return
	}

	snapshot := timer.Clone()
	snapshot.ID = id
	e := &entry{timer: snapshot}
	e.machine = machine.New(snapshot, machineEvents{c}, c.clock)
	// the only insertion point
	c.registry.Add(e)
	c.startWith(e, pos)
}

func (c *Coordinator) startWith(e *entry, pos *model.Position) {
	if pos != nil && *pos != e.machine.Current() && timeline.IsValid(e.timer, *pos) {
		e.machine.ToIndex(*pos)
	}
	e.machine.Start()
}

func (c *Coordinator) PauseTimer(id int) {
	if e := c.registry.Get(id); e != nil {
		e.machine.Pause()
	}
}

// MoveTimer jumps id to pos. Invalid positions are ignored.
func (c *Coordinator) MoveTimer(id int, pos model.Position) {
	if e := c.registry.Get(id); e != nil {
		e.machine.ToIndex(pos)
	}
}

// StepBackward moves id one leaf back, or resets it when it sits on its
// first leaf
func (c *Coordinator) StepBackward(id int) {
	e := c.registry.Get(id)
	if e == nil {
		return
	}
	if e.machine.IsAtFirst() {
		c.ResetTimer(id)
		return
	}
	prev, _ := timeline.Previous(e.timer.Steps, e.timer.Loop, e.machine.Current())
	c.MoveTimer(id, prev)
}

// StepForward moves id one leaf on, or resets it when it sits on its last
// leaf
func (c *Coordinator) StepForward(id int) {
	e := c.registry.Get(id)
	if e == nil {
		return
	}
	if e.machine.IsAtLast() {
		c.ResetTimer(id)
		return
	}
	next, _ := timeline.Next(e.timer.Steps, e.timer.Loop, e.machine.Current())
	c.MoveTimer(id, next)
}

// ResetTimer stops id without completing it. The forced end removes it from
// the registry and cancels its behaviours.
func (c *Coordinator) ResetTimer(id int) {
	if e := c.registry.Get(id); e != nil {
		e.machine.Stop()
		return
	}
	c.stopServiceIfEmpty()
}

// AdjustAmount changes the current clock of id by d. With goBackOnNotifier a
// positive adjustment on a notifier step returns to the previous step with a
// minute on the clock instead.
func (c *Coordinator) AdjustAmount(id int, d time.Duration, goBackOnNotifier bool) {
	e := c.registry.Get(id)
	if e == nil {
		return
	}
	leaf := e.machine.CurrentStep()
	if goBackOnNotifier && d > 0 && leaf != nil && leaf.Type == model.StepNotifier {
		c.StepBackward(id)
		if e.machine.State().IsRunning() {
			e.machine.ToOneMinute()
		}
		return
	}
	e.machine.Adjust(d)
}

// RewindOneMinute takes a minute off the current clock of id
func (c *Coordinator) RewindOneMinute(id int) {
	if e := c.registry.Get(id); e != nil {
		e.machine.RewindOneMinute()
	}
}

// StartAll resumes every paused timer
func (c *Coordinator) StartAll() {
	for _, id := range c.registry.IDs() {
		if e := c.registry.Get(id); e != nil && e.machine.State() == clock.StatePaused {
			e.machine.Start()
		}
	}
}

// PauseAll pauses every running timer and returns their ids
func (c *Coordinator) PauseAll() []int {
	var paused []int
	for _, id := range c.registry.IDs() {
		if e := c.registry.Get(id); e != nil && e.machine.State().IsRunning() {
			paused = append(paused, id)
			e.machine.Pause()
		}
	}
	return paused
}

func (c *Coordinator) StopAll() {
	for _, id := range c.registry.IDs() {
		c.ResetTimer(id)
	}
}

// ScheduleStart is the entry point for scheduled starts
func (c *Coordinator) ScheduleStart(id int) {
	c.StartTimer(id, nil)
}

// ScheduleEnd is the entry point for scheduled ends: it moves id to its end
// step when there is one and resets it otherwise
func (c *Coordinator) ScheduleEnd(id int) {
	if e := c.registry.Get(id); e != nil {
		if e.timer.EndStep != nil {
			c.MoveTimer(id, model.End())
		} else {
			c.ResetTimer(id)
		}
	}
	c.stopServiceIfEmpty()
}

// Tick advances every running clock by elapsed
func (c *Coordinator) Tick(elapsed time.Duration) {
	for _, id := range c.registry.IDs() {
		if e := c.registry.Get(id); e != nil {
			e.machine.Tick(elapsed)
		}
	}
}

// Close stops every timer, drops listeners and releases the surface
func (c *Coordinator) Close() {
	c.StopAll()
	c.listeners.clear()
	if c.active {
		c.active = false
		c.surface.CleanUpWorkArea()
		c.surface.Shutdown()
	}
}

// stopServiceIfEmpty releases the surface once the last timer is gone
func (c *Coordinator) stopServiceIfEmpty() {
	if c.registry.Len() > 0 || len(c.pending) > 0 || !c.active {
		return
	}
	c.active = false
	c.mode = ModeNone
	c.dedicatedID = 0
	c.surface.CleanUpWorkArea()
	c.surface.Shutdown()
	c.logger.Debug("All timers stopped, surface released")
}
