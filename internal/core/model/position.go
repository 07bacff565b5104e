package model

import "fmt"

// PositionKind tags the variant held by a Position
type PositionKind int

const (
	PositionStart PositionKind = iota
	PositionStep
	PositionGroup
	PositionEnd
)

func (k PositionKind) String() string {
	switch k {
	case PositionStart:
		return "start"
	case PositionStep:
		return "step"
	case PositionGroup:
		return "group"
	case PositionEnd:
		return "end"
	default:
		return "unknown"
	}
}

// StepIndex addresses a leaf by loop and step counters
type StepIndex struct {
	Loop int `json:"loop" yaml:"loop"`
	Step int `json:"step" yaml:"step"`
}

// Position addresses one leaf inside a timer.
//
// Loop and Step are meaningful for PositionStep and PositionGroup. GroupStep is
// only meaningful for PositionGroup, where it addresses a leaf inside the
// group found at Step. Positions are comparable with ==.
type Position struct {
	Kind      PositionKind `json:"kind" yaml:"kind"`
	Loop      int          `json:"loop,omitempty" yaml:"loop,omitempty"`
	Step      int          `json:"step,omitempty" yaml:"step,omitempty"`
	GroupStep StepIndex    `json:"group_step,omitempty" yaml:"group_step,omitempty"`
}

// Start is the position before the first loop, holding the optional start step
func Start() Position {
	return Position{Kind: PositionStart}
}

// End is the position after the last loop, holding the optional end step
func End() Position {
	return Position{Kind: PositionEnd}
}

// StepPosition addresses a top-level leaf
func StepPosition(loop, step int) Position {
	return Position{Kind: PositionStep, Loop: loop, Step: step}
}

// GroupPosition addresses a leaf inside the group at step
func GroupPosition(loop, step, groupLoop, groupStep int) Position {
	return Position{
		Kind:      PositionGroup,
		Loop:      loop,
		Step:      step,
		GroupStep: StepIndex{Loop: groupLoop, Step: groupStep},
	}
}

func (p Position) IsStart() bool { return p.Kind == PositionStart }
func (p Position) IsEnd() bool   { return p.Kind == PositionEnd }

// IsBoundary reports whether p is Start or End
func (p Position) IsBoundary() bool {
	return p.Kind == PositionStart || p.Kind == PositionEnd
}

// DisplayLoop returns the 1-based loop shown to users. Start counts as the
// first loop and End as the last.
func (p Position) DisplayLoop(total int) int {
	switch p.Kind {
	case PositionStart:
		return 1
	case PositionEnd:
		return total
	default:
		return p.Loop + 1
	}
}

func (p Position) String() string {
	switch p.Kind {
	case PositionStep:
		return fmt.Sprintf("step(loop=%d, step=%d)", p.Loop, p.Step)
	case PositionGroup:
		return fmt.Sprintf("group(loop=%d, step=%d, group=%d/%d)",
			p.Loop, p.Step, p.GroupStep.Loop, p.GroupStep.Step)
	default:
		return p.Kind.String()
	}
}
