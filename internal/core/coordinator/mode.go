package coordinator

// Mode is how running timers are presented: nothing, one timer's own
// indicator, or a single aggregated indicator for all of them
type Mode int

const (
	ModeNone Mode = iota
	ModeDedicated
	ModeAggregated
)

func (m Mode) String() string {
	switch m {
	case ModeDedicated:
		return "dedicated"
	case ModeAggregated:
		return "aggregated"
	default:
		return "none"
	}
}

// ModeFor derives the mode from the number of running timers and how many of
// them ask for their own indicator
func ModeFor(total, withIndicator int) Mode {
	switch {
	case total <= 0:
		return ModeNone
	case total == 1 && withIndicator == 1:
		return ModeDedicated
	default:
		return ModeAggregated
	}
}
