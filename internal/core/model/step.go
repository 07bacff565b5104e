package model

import (
	"fmt"
	"time"
)

// StepType marks the role a leaf plays in a timer
type StepType int

const (
	StepNormal StepType = iota
	// StepNotifier steps ask for attention. Adjusting one forward can send the
	// timer back to the previous step instead.
	StepNotifier
	StepStart
	StepEnd
)

func (t StepType) String() string {
	switch t {
	case StepNormal:
		return "normal"
	case StepNotifier:
		return "notifier"
	case StepStart:
		return "start"
	case StepEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ParseStepType maps a definition-file value to a StepType
func ParseStepType(s string) (StepType, error) {
	switch s {
	case "", "normal":
		return StepNormal, nil
	case "notifier":
		return StepNotifier, nil
	case "start":
		return StepStart, nil
	case "end":
		return StepEnd, nil
	default:
		return StepNormal, fmt.Errorf("unknown step type %q", s)
	}
}

// StepContent is either a Leaf or a Group. Nesting is one level deep.
type StepContent interface {
	isStepContent()
	// Length is the time the content takes to run once through, with group
	// loops applied.
	Length() time.Duration
}

// Leaf is a terminal step with a duration and its behaviours
type Leaf struct {
	Label      string
	Duration   time.Duration
	Behaviours []Behaviour
	Type       StepType
}

func (Leaf) isStepContent() {}

func (l Leaf) Length() time.Duration { return l.Duration }

// Find returns the first behaviour of type t, or nil
func (l Leaf) Find(t BehaviourType) Behaviour {
	for _, b := range l.Behaviours {
		if b.Type() == t {
			return b
		}
	}
	return nil
}

// Has reports whether the leaf carries a behaviour of type t
func (l Leaf) Has(t BehaviourType) bool {
	return l.Find(t) != nil
}

// IsHalt reports whether the leaf runs as a stopwatch
func (l Leaf) IsHalt() bool {
	return l.Has(BehaviourHalt)
}

// Speaks reports whether entering this leaf triggers speech
func (l Leaf) Speaks() bool {
	for _, b := range l.Behaviours {
		if b.UsesSpeech() {
			return true
		}
	}
	return false
}

// Group repeats its leaves Loop times
type Group struct {
	Name   string
	Loop   int
	Leaves []Leaf
}

func (Group) isStepContent() {}

// Length is the sum of the leaves multiplied by the group loop
func (g Group) Length() time.Duration {
	var sum time.Duration
	for _, leaf := range g.Leaves {
		sum += leaf.Duration
	}
	return sum * time.Duration(g.Loop)
}

// OnceLength is the time a single pass through the group takes
func (g Group) OnceLength() time.Duration {
	var sum time.Duration
	for _, leaf := range g.Leaves {
		sum += leaf.Duration
	}
	return sum
}
