package layout

import (
	"fmt"
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/coordinator"
	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/core/timeline"
	"github.com/penwyp/go-interval-timer/internal/util"
)

// Row is one timer on the dashboard. Running is false for timers that are
// defined but have no live machine; their Info carries only the timer.
type Row struct {
	coordinator.Info
	Running  bool
	Selected bool
}

// View is everything a layout strategy draws in one frame
type View struct {
	Now        time.Time
	TwelveHour bool
	Mode       coordinator.Mode
	Rows       []Row
	// Effects are the sounds, screens and lights currently active
	Effects   []string
	Status    string
	SortField string
	Help      []string
	Confirm   string
}

// Running counts rows with a live machine
func (v View) Running() int {
	n := 0
	for _, r := range v.Rows {
		if r.Running {
			n++
		}
	}
	return n
}

func (r Row) leaf() *model.Leaf {
	if !r.Running {
		return nil
	}
	return timeline.StepAt(r.Timer, r.Position)
}

// StepLabel names the current step, prefixed by its group
func (r Row) StepLabel() string {
	if !r.Running {
		return fmt.Sprintf("%d steps", r.Timer.StepCount())
	}
	label := ""
	if leaf := r.leaf(); leaf != nil {
		label = leaf.Label
	}
	if label == "" {
		switch r.Position.Kind {
		case model.PositionStart:
			label = "Start"
		case model.PositionEnd:
			label = "End"
		default:
			label = fmt.Sprintf("Step %d", r.Position.Step+1)
		}
	}
	if group := timeline.GroupAt(r.Timer, r.Position); group != nil && group.Name != "" {
		label = group.Name + " › " + label
	}
	return label
}

// LoopText shows the current loop out of the timer's loops
func (r Row) LoopText() string {
	loop := 1
	if r.Running {
		loop = r.Position.DisplayLoop(r.Timer.Loop)
	}
	return fmt.Sprintf("%d/%d", loop, r.Timer.Loop)
}

// ClockText is the step clock. A halt step counts up and gets a plus sign.
func (r Row) ClockText() string {
	if !r.Running {
		return util.FormatClock(timeline.TotalTime(r.Timer))
	}
	if leaf := r.leaf(); leaf != nil && leaf.IsHalt() {
		return "+" + util.FormatClock(r.Value)
	}
	return util.FormatClock(r.Value)
}

// stepValue is the remaining time of the current step. A halt step has no
// end, so it stays at its nominal length.
func (r Row) stepValue() time.Duration {
	if leaf := r.leaf(); leaf != nil && leaf.IsHalt() {
		return leaf.Duration
	}
	return r.Value
}

// Remaining is the time left in the whole run
func (r Row) Remaining() time.Duration {
	if !r.Running {
		return timeline.TotalTime(r.Timer)
	}
	return timeline.RemainingAt(r.Timer, r.Position, r.stepValue())
}

// Percent is the elapsed share of the run, 0 to 100
func (r Row) Percent() float64 {
	if !r.Running {
		return 0
	}
	return timeline.Progress(r.Timer, r.Position, r.stepValue()) * 100
}

// StateIcon marks running, paused and idle rows
func (r Row) StateIcon() string {
	switch {
	case !r.Running:
		return "■"
	case r.State.IsRunning():
		return "▶"
	default:
		return "⏸"
	}
}
