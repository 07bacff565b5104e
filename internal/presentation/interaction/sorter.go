package interaction

import (
	"cmp"
	"slices"
	"strings"

	"github.com/penwyp/go-interval-timer/internal/core/clock"
	"github.com/penwyp/go-interval-timer/internal/core/coordinator"
	"github.com/penwyp/go-interval-timer/internal/core/timeline"
)

// SortField represents the field to sort timers by
type SortField int

const (
	SortByID SortField = iota
	SortByName
	SortByRemaining
	SortByState
	sortFieldCount
)

func (f SortField) String() string {
	switch f {
	case SortByName:
		return "name"
	case SortByRemaining:
		return "remaining"
	case SortByState:
		return "state"
	}
	return "id"
}

// TimerSorter orders the dashboard rows
type TimerSorter struct {
	field SortField
}

func NewTimerSorter() *TimerSorter {
	return &TimerSorter{field: SortByID}
}

func (s *TimerSorter) Field() SortField { return s.field }

// Next switches to the following sort field and returns it
func (s *TimerSorter) Next() SortField {
	s.field = (s.field + 1) % sortFieldCount
	return s.field
}

// Sort orders infos in place. Ties fall back to the timer id so the order is
// stable across refreshes.
func (s *TimerSorter) Sort(infos []coordinator.Info) {
	slices.SortStableFunc(infos, func(a, b coordinator.Info) int {
		var c int
		switch s.field {
		case SortByName:
			c = strings.Compare(strings.ToLower(a.Timer.Name), strings.ToLower(b.Timer.Name))
		case SortByRemaining:
			c = cmp.Compare(remaining(a), remaining(b))
		case SortByState:
			c = cmp.Compare(stateRank(a.State), stateRank(b.State))
		}
		return cmp.Or(c, cmp.Compare(a.Timer.ID, b.Timer.ID))
	})
}

func remaining(info coordinator.Info) int64 {
	return int64(timeline.RemainingAt(info.Timer, info.Position, info.Value))
}

func stateRank(s clock.State) int {
	switch s {
	case clock.StateRunning:
		return 0
	case clock.StatePaused:
		return 1
	}
	return 2
}
