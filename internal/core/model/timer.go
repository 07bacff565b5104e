package model

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	ErrNoSteps     = errors.New("timer has no steps")
	ErrInvalidLoop = errors.New("loop count must be at least 1")
)

// Timer is an immutable timer definition
type Timer struct {
	ID        int
	Name      string
	Loop      int
	Steps     []StepContent
	StartStep *Leaf
	EndStep   *Leaf
	// Notify asks for a dedicated indicator while this is the only running timer
	Notify bool
	// TriggerID is started when this timer ends normally. 0 means none.
	TriggerID int
}

// Validate reports structural problems that would break navigation. The
// trigger target is not checked; a timer may chain to itself to repeat.
func (t *Timer) Validate() error {
	if len(t.Steps) == 0 {
		return fmt.Errorf("timer %d: %w", t.ID, ErrNoSteps)
	}
	if t.Loop < 1 {
		return fmt.Errorf("timer %d: %w", t.ID, ErrInvalidLoop)
	}
	for i, content := range t.Steps {
		switch c := content.(type) {
		case Leaf:
			if c.Duration < 0 {
				return fmt.Errorf("timer %d step %d: negative duration", t.ID, i)
			}
		case Group:
			if c.Loop < 1 {
				return fmt.Errorf("timer %d group %q: %w", t.ID, c.Name, ErrInvalidLoop)
			}
			if len(c.Leaves) == 0 {
				return fmt.Errorf("timer %d group %q: empty group", t.ID, c.Name)
			}
			for j, leaf := range c.Leaves {
				if leaf.Duration < 0 {
					return fmt.Errorf("timer %d group %q step %d: negative duration", t.ID, c.Name, j)
				}
			}
		default:
			return fmt.Errorf("timer %d step %d: unsupported content %T", t.ID, i, content)
		}
	}
	return nil
}

// Clone returns a deep copy so a running machine never observes edits
func (t *Timer) Clone() *Timer {
	out := *t
	out.Steps = make([]StepContent, len(t.Steps))
	for i, content := range t.Steps {
		switch c := content.(type) {
		case Leaf:
			out.Steps[i] = cloneLeaf(c)
		case Group:
			leaves := make([]Leaf, len(c.Leaves))
			for j, leaf := range c.Leaves {
				leaves[j] = cloneLeaf(leaf)
			}
			out.Steps[i] = Group{Name: c.Name, Loop: c.Loop, Leaves: leaves}
		}
	}
	if t.StartStep != nil {
		leaf := cloneLeaf(*t.StartStep)
		out.StartStep = &leaf
	}
	if t.EndStep != nil {
		leaf := cloneLeaf(*t.EndStep)
		out.EndStep = &leaf
	}
	return &out
}

func cloneLeaf(l Leaf) Leaf {
	l.Behaviours = slices.Clone(l.Behaviours)
	return l
}

// StepCount returns the number of leaves in one top-level loop
func (t *Timer) StepCount() int {
	count := 0
	for _, content := range t.Steps {
		switch c := content.(type) {
		case Leaf:
			count++
		case Group:
			count += len(c.Leaves) * c.Loop
		}
	}
	return count
}

// OnceLength is the duration of one top-level loop
func (t *Timer) OnceLength() time.Duration {
	var sum time.Duration
	for _, content := range t.Steps {
		sum += content.Length()
	}
	return sum
}
