package timeline

import (
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/model"
)

// AccumulateTime is one pass over steps, with group loops applied
func AccumulateTime(steps []model.StepContent) time.Duration {
	var total time.Duration
	for _, content := range steps {
		total += content.Length()
	}
	return total
}

// TotalTime is the full run length of t, start and end steps included
func TotalTime(t *model.Timer) time.Duration {
	total := AccumulateTime(t.Steps) * time.Duration(t.Loop)
	if t.StartStep != nil {
		total += t.StartStep.Duration
	}
	if t.EndStep != nil {
		total += t.EndStep.Duration
	}
	return total
}

// TimeBeforeIndex is the run time that elapses before the leaf at pos starts
func TimeBeforeIndex(t *model.Timer, pos model.Position) time.Duration {
	switch pos.Kind {
	case model.PositionStart:
		return 0
	case model.PositionEnd:
		before := TotalTime(t)
		if t.EndStep != nil {
			before -= t.EndStep.Duration
		}
		return before
	}

	var before time.Duration
	if t.StartStep != nil {
		before = t.StartStep.Duration
	}
	step := min(max(pos.Step, 0), len(t.Steps))
	before += AccumulateTime(t.Steps)*time.Duration(pos.Loop) + AccumulateTime(t.Steps[:step])

	if pos.Kind == model.PositionGroup {
		if group := GroupAt(t, pos); group != nil {
			gStep := min(max(pos.GroupStep.Step, 0), len(group.Leaves))
			before += group.OnceLength() * time.Duration(pos.GroupStep.Loop)
			for _, leaf := range group.Leaves[:gStep] {
				before += leaf.Duration
			}
		}
	}
	return before
}

// RemainingAt is the time left in the whole run when the leaf at pos still
// has current left on its clock
func RemainingAt(t *model.Timer, pos model.Position, current time.Duration) time.Duration {
	remaining := TotalTime(t) - TimeBeforeIndex(t, pos)
	if leaf := StepAt(t, pos); leaf != nil {
		remaining -= leaf.Duration - current
	}
	return max(remaining, 0)
}

// Progress returns the elapsed share of the run in [0, 1]
func Progress(t *model.Timer, pos model.Position, current time.Duration) float64 {
	total := TotalTime(t)
	if total <= 0 {
		return 0
	}
	elapsed := total - RemainingAt(t, pos, current)
	return min(max(float64(elapsed)/float64(total), 0), 1)
}
