package coordinator

import (
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/clock"
	"github.com/penwyp/go-interval-timer/internal/core/machine"
	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/core/timeline"
	"github.com/penwyp/go-interval-timer/internal/data/records"
)

// machineEvents receives machine callbacks without exposing them on
// Coordinator
type machineEvents struct {
	c *Coordinator
}

var _ machine.Listener = machineEvents{}

func (ev machineEvents) Begin(id int) {
	c := ev.c
	if !c.registry.Has(id) {
		c.logger.Warnf("Begin for timer %d which is not registered", id)
		return
	}
	if !c.active {
		c.active = true
		c.surface.PrepareForWork()
	}
	c.applyMode(id)
	c.listeners.each(id, func(l Listener) { l.Begin(id) })
}

func (ev machineEvents) Started(id int, pos model.Position) {
	c := ev.c
	c.updateAggregated(id)
	c.startBehaviours(id, pos)
	c.listeners.each(id, func(l Listener) { l.Started(id, pos) })
}

func (ev machineEvents) Paused(id int) {
	c := ev.c
	c.updateAggregated(0)
	c.stopBehaviours()
	c.listeners.each(id, func(l Listener) { l.Paused(id) })
}

func (ev machineEvents) Updated(id int, value time.Duration) {
	ev.c.listeners.each(id, func(l Listener) { l.Updated(id, value) })
}

func (ev machineEvents) Finished(id int) {
	c := ev.c
	c.stopBehaviours()
	c.listeners.each(id, func(l Listener) { l.Finished(id) })
}

func (ev machineEvents) End(id int, forced bool) {
	c := ev.c
	e := c.registry.Get(id)
	if e == nil {
		c.logger.Warnf("End for timer %d which is not registered", id)
	} else {
		// the only removal point
		c.registry.Remove(id)
		c.applyMode(id)
	}
	c.stopBehaviours()

	if e != nil && (!forced || timeline.IsLastInTimer(e.timer, e.machine.Current())) {
		c.appendRecord(e)
	}

	c.listeners.each(id, func(l Listener) { l.End(id, forced) })

	if e != nil && e.timer.TriggerID != 0 && !forced {
		c.logger.Infof("Timer %d finished, starting chained timer %d", id, e.timer.TriggerID)
		c.StartTimer(e.timer.TriggerID, nil)
		return
	}
	c.stopServiceIfEmpty()
}

func (ev machineEvents) Beep(int) {
	ev.c.surface.PlayTone()
}

func (ev machineEvents) NotifyHalf(_ int, option int) {
	s := ev.c.surface
	switch option {
	case model.HalfOptionVoice:
		s.Speak("Half", nil)
	case model.HalfOptionMusic:
		s.PlayMusic("", false)
	case model.HalfOptionVibration:
		s.StartVibration(model.VibrationNormal.Twice(), false)
	}
}

func (ev machineEvents) CountRead(_ int, content string) {
	ev.c.surface.Speak(content, nil)
}

func (c *Coordinator) appendRecord(e *entry) {
	if c.records == nil {
		return
	}
	end := c.clock.Now()
	start := e.machine.BeginTime()
	if start.IsZero() {
		start = end.Add(-time.Millisecond)
	}
	rec := records.NewRecord(e.timer.ID, e.timer.Name, start, end)

	var err error
	c.runner.Run(func() {
		err = c.records.AppendRecord(c.ctx, rec)
	}, func() {
		if err != nil {
			c.logger.Errorf("Failed to append record for timer %d: %v", rec.TimerID, err)
		}
	})
}

// applyMode recomputes the presentation mode after the registry changed
// around id and issues the indicator calls for the transition
func (c *Coordinator) applyMode(id int) {
	prev := c.mode
	next := ModeFor(c.registry.Len(), c.registry.WithIndicator())

	switch next {
	case ModeNone:
		switch prev {
		case ModeDedicated:
			c.surface.CancelDedicatedIndicator(c.dedicatedID)
		case ModeAggregated:
			c.surface.CancelAggregatedIndicator()
		}
		c.dedicatedID = 0

	case ModeDedicated:
		sole := c.registry.First()
		if prev == ModeDedicated && c.dedicatedID == sole.timer.ID {
			break
		}
		switch prev {
		case ModeAggregated:
			c.surface.CancelAggregatedIndicator()
		case ModeDedicated:
			c.surface.CancelDedicatedIndicator(c.dedicatedID)
		}
		c.dedicatedID = sole.timer.ID
		c.surface.CreateDedicatedIndicator(sole.timer.ID, sole.timer)
		c.surface.PromoteToForeground(sole.timer.ID)

	case ModeAggregated:
		if prev == ModeDedicated {
			c.surface.CancelDedicatedIndicator(c.dedicatedID)
			c.dedicatedID = 0
		}
		if prev != ModeAggregated {
			c.surface.CreateAggregatedIndicator()
			c.surface.PromoteToForeground(0)
		}
	}

	if next != prev {
		c.logger.Debugf("Presentation mode %s -> %s (timer %d)", prev, next, id)
	}
	c.mode = next
	c.updateAggregated(0)
}

// updateAggregated refreshes the aggregated indicator. starting names a timer
// whose clock is about to resume and must not count as paused.
func (c *Coordinator) updateAggregated(starting int) {
	if c.mode != ModeAggregated {
		return
	}
	total := c.registry.Len()
	paused := 0
	for _, id := range c.registry.IDs() {
		if id == starting {
			continue
		}
		if e := c.registry.Get(id); e != nil && e.machine.State() == clock.StatePaused {
			paused++
		}
	}
	soleName := ""
	if total == 1 {
		soleName = c.registry.First().timer.Name
	}
	c.surface.UpdateAggregatedIndicator(total, paused, soleName)
}
