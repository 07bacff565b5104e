// Package timeline walks the nested step, group and loop structure of a timer.
// Everything here is pure: no clocks, no side effects.
package timeline

import (
	"fmt"

	"github.com/penwyp/go-interval-timer/internal/core/model"
)

// Next returns the position after pos and the leaf found there. The leaf is
// nil when the walk runs past the last loop and lands on End.
func Next(steps []model.StepContent, loop int, pos model.Position) (model.Position, *model.Leaf) {
	mustHaveSteps(steps)

	switch pos.Kind {
	case model.PositionStart:
		return enterFirst(steps, 0, 0)
	case model.PositionStep:
		return nextAfter(steps, loop, pos.Loop, pos.Step)
	case model.PositionGroup:
		group := groupAt(steps, pos.Step)
		gs := pos.GroupStep
		if gs.Step+1 < len(group.Leaves) {
			leaf := group.Leaves[gs.Step+1]
			return model.GroupPosition(pos.Loop, pos.Step, gs.Loop, gs.Step+1), &leaf
		}
		if gs.Loop+1 < group.Loop {
			leaf := group.Leaves[0]
			return model.GroupPosition(pos.Loop, pos.Step, gs.Loop+1, 0), &leaf
		}
		return nextAfter(steps, loop, pos.Loop, pos.Step)
	default:
		return model.End(), nil
	}
}

// Previous mirrors Next. Stepping back from End lands on the last leaf of the
// last loop; stepping back from the first leaf lands on Start.
func Previous(steps []model.StepContent, loop int, pos model.Position) (model.Position, *model.Leaf) {
	mustHaveSteps(steps)

	switch pos.Kind {
	case model.PositionStep:
		return previousBefore(steps, loop, pos.Loop, pos.Step)
	case model.PositionGroup:
		group := groupAt(steps, pos.Step)
		gs := pos.GroupStep
		if gs.Step > 0 {
			leaf := group.Leaves[gs.Step-1]
			return model.GroupPosition(pos.Loop, pos.Step, gs.Loop, gs.Step-1), &leaf
		}
		if gs.Loop > 0 {
			last := len(group.Leaves) - 1
			leaf := group.Leaves[last]
			return model.GroupPosition(pos.Loop, pos.Step, gs.Loop-1, last), &leaf
		}
		return previousBefore(steps, loop, pos.Loop, pos.Step)
	case model.PositionEnd:
		return enterLast(steps, loop-1, len(steps)-1)
	default:
		return model.Start(), nil
	}
}

// nextAfter moves past the top-level entry at step, rolling into the next loop
func nextAfter(steps []model.StepContent, loop, currentLoop, step int) (model.Position, *model.Leaf) {
	if step+1 < len(steps) {
		return enterFirst(steps, currentLoop, step+1)
	}
	if currentLoop+1 < loop {
		return enterFirst(steps, currentLoop+1, 0)
	}
	return model.End(), nil
}

// previousBefore moves before the top-level entry at step, rolling into the
// previous loop
func previousBefore(steps []model.StepContent, loop, currentLoop, step int) (model.Position, *model.Leaf) {
	if step > 0 {
		return enterLast(steps, currentLoop, step-1)
	}
	if currentLoop > 0 {
		return enterLast(steps, currentLoop-1, len(steps)-1)
	}
	return model.Start(), nil
}

// enterFirst addresses the first leaf of the entry at step
func enterFirst(steps []model.StepContent, loop, step int) (model.Position, *model.Leaf) {
	switch c := steps[step].(type) {
	case model.Leaf:
		return model.StepPosition(loop, step), &c
	case model.Group:
		mustHaveLeaves(c)
		leaf := c.Leaves[0]
		return model.GroupPosition(loop, step, 0, 0), &leaf
	default:
		panic(fmt.Sprintf("timeline: unsupported step content %T", c))
	}
}

// enterLast addresses the last leaf of the last group loop of the entry at step
func enterLast(steps []model.StepContent, loop, step int) (model.Position, *model.Leaf) {
	switch c := steps[step].(type) {
	case model.Leaf:
		return model.StepPosition(loop, step), &c
	case model.Group:
		mustHaveLeaves(c)
		last := len(c.Leaves) - 1
		leaf := c.Leaves[last]
		return model.GroupPosition(loop, step, c.Loop-1, last), &leaf
	default:
		panic(fmt.Sprintf("timeline: unsupported step content %T", c))
	}
}

func groupAt(steps []model.StepContent, step int) model.Group {
	group, ok := steps[step].(model.Group)
	if !ok {
		panic(fmt.Sprintf("timeline: step %d is not a group", step))
	}
	mustHaveLeaves(group)
	return group
}

func mustHaveSteps(steps []model.StepContent) {
	if len(steps) == 0 {
		panic("timeline: navigation over empty steps")
	}
}

func mustHaveLeaves(group model.Group) {
	if len(group.Leaves) == 0 {
		panic(fmt.Sprintf("timeline: group %q has no steps", group.Name))
	}
}
