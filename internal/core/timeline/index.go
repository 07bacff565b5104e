package timeline

import "github.com/penwyp/go-interval-timer/internal/core/model"

// StepAt returns the leaf addressed by pos, or nil when pos does not address
// anything in t. Start and End resolve to the start and end steps.
func StepAt(t *model.Timer, pos model.Position) *model.Leaf {
	switch pos.Kind {
	case model.PositionStart:
		return t.StartStep
	case model.PositionEnd:
		return t.EndStep
	case model.PositionStep:
		if pos.Step < 0 || pos.Step >= len(t.Steps) {
			return nil
		}
		leaf, ok := t.Steps[pos.Step].(model.Leaf)
		if !ok {
			return nil
		}
		return &leaf
	case model.PositionGroup:
		group := GroupAt(t, pos)
		if group == nil {
			return nil
		}
		i := pos.GroupStep.Step
		if i < 0 || i >= len(group.Leaves) {
			return nil
		}
		leaf := group.Leaves[i]
		return &leaf
	}
	return nil
}

// GroupAt returns the group containing pos, or nil for non-group positions
func GroupAt(t *model.Timer, pos model.Position) *model.Group {
	if pos.Kind != model.PositionGroup || pos.Step < 0 || pos.Step >= len(t.Steps) {
		return nil
	}
	group, ok := t.Steps[pos.Step].(model.Group)
	if !ok {
		return nil
	}
	return &group
}

// FirstIndex is where a fresh run of t begins
func FirstIndex(t *model.Timer) model.Position {
	if t.StartStep != nil {
		return model.Start()
	}
	pos, _ := enterFirst(t.Steps, 0, 0)
	return pos
}

// LastIndex is the final position a run of t visits
func LastIndex(t *model.Timer) model.Position {
	if t.EndStep != nil {
		return model.End()
	}
	pos, _ := enterLast(t.Steps, t.Loop-1, len(t.Steps)-1)
	return pos
}

// TimerLoop returns the zero-based top-level loop of pos
func TimerLoop(t *model.Timer, pos model.Position) int {
	switch pos.Kind {
	case model.PositionStart:
		return 0
	case model.PositionEnd:
		return t.Loop - 1
	default:
		return pos.Loop
	}
}

// IsValid reports whether pos addresses a leaf of t. Start and End are only
// valid when the matching start or end step exists.
func IsValid(t *model.Timer, pos model.Position) bool {
	switch pos.Kind {
	case model.PositionStart:
		return t.StartStep != nil
	case model.PositionEnd:
		return t.EndStep != nil
	case model.PositionStep:
		if pos.Loop < 0 || pos.Loop >= t.Loop || pos.Step < 0 || pos.Step >= len(t.Steps) {
			return false
		}
		_, ok := t.Steps[pos.Step].(model.Leaf)
		return ok
	case model.PositionGroup:
		if pos.Loop < 0 || pos.Loop >= t.Loop {
			return false
		}
		group := GroupAt(t, pos)
		if group == nil {
			return false
		}
		gs := pos.GroupStep
		return gs.Loop >= 0 && gs.Loop < group.Loop && gs.Step >= 0 && gs.Step < len(group.Leaves)
	}
	return false
}

// IsLastInTimer reports whether pos is structurally the last leaf of t
func IsLastInTimer(t *model.Timer, pos model.Position) bool {
	switch pos.Kind {
	case model.PositionStart:
		return t.StartStep != nil && len(t.Steps) == 0 && t.EndStep == nil
	case model.PositionEnd:
		return true
	case model.PositionStep:
		if t.EndStep != nil || len(t.Steps) == 0 {
			return false
		}
		if _, ok := t.Steps[len(t.Steps)-1].(model.Leaf); !ok {
			return false
		}
		return pos.Loop == t.Loop-1 && pos.Step == len(t.Steps)-1
	case model.PositionGroup:
		if t.EndStep != nil || len(t.Steps) == 0 {
			return false
		}
		if pos.Loop != t.Loop-1 || pos.Step != len(t.Steps)-1 {
			return false
		}
		group, ok := t.Steps[len(t.Steps)-1].(model.Group)
		if !ok {
			return false
		}
		return pos.GroupStep.Loop == group.Loop-1 && pos.GroupStep.Step == len(group.Leaves)-1
	}
	return false
}

// GroupAsTimer views the group containing pos as a standalone timer, so
// timing helpers can answer group-scoped questions. It returns nil for
// non-group positions.
func GroupAsTimer(t *model.Timer, pos model.Position) *model.Timer {
	group := GroupAt(t, pos)
	if group == nil {
		return nil
	}
	steps := make([]model.StepContent, len(group.Leaves))
	for i, leaf := range group.Leaves {
		steps[i] = leaf
	}
	return &model.Timer{ID: t.ID, Name: group.Name, Loop: group.Loop, Steps: steps}
}

// InnerPosition translates a group position into the matching position of
// GroupAsTimer
func InnerPosition(pos model.Position) model.Position {
	return model.StepPosition(pos.GroupStep.Loop, pos.GroupStep.Step)
}
