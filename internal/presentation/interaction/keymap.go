package interaction

// Action is what a key asks the dashboard to do
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggle
	ActionReset
	ActionStepForward
	ActionStepBackward
	ActionAddMinute
	ActionRewindMinute
	ActionSelectNext
	ActionSelectPrev
	ActionSelectIndex
	ActionStartAll
	ActionPauseAll
	ActionStopAll
	ActionToggleLayout
	ActionCycleSort
	ActionReload
	ActionHelp
	ActionConfirm
	ActionCancel
)

var actionNames = map[Action]string{
	ActionNone:         "none",
	ActionQuit:         "quit",
	ActionToggle:       "toggle",
	ActionReset:        "reset",
	ActionStepForward:  "next",
	ActionStepBackward: "prev",
	ActionAddMinute:    "add",
	ActionRewindMinute: "rewind",
	ActionSelectNext:   "down",
	ActionSelectPrev:   "up",
	ActionSelectIndex:  "select",
	ActionStartAll:     "startall",
	ActionPauseAll:     "pauseall",
	ActionStopAll:      "stopall",
	ActionToggleLayout: "layout",
	ActionCycleSort:    "sort",
	ActionReload:       "reload",
	ActionHelp:         "help",
	ActionConfirm:      "confirm",
	ActionCancel:       "cancel",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Binding is a resolved key press. Index is the zero based row for
// ActionSelectIndex.
type Binding struct {
	Action Action
	Index  int
}

var charBindings = map[rune]Action{
	'q': ActionQuit,
	3:   ActionQuit,
	' ': ActionToggle,
	'r': ActionReset,
	'n': ActionStepForward,
	'p': ActionStepBackward,
	'+': ActionAddMinute,
	'=': ActionAddMinute,
	'-': ActionRewindMinute,
	'j': ActionSelectNext,
	'k': ActionSelectPrev,
	'S': ActionStartAll,
	'P': ActionPauseAll,
	'X': ActionStopAll,
	'l': ActionToggleLayout,
	's': ActionCycleSort,
	'R': ActionReload,
	'h': ActionHelp,
	'?': ActionHelp,
	'y': ActionConfirm,
	'Y': ActionConfirm,
	'N': ActionCancel,
}

// Resolve maps a key event to its dashboard action
func Resolve(event KeyEvent) Binding {
	switch event.Type {
	case KeyEscape:
		return Binding{Action: ActionCancel}
	case KeyEnter:
		return Binding{Action: ActionToggle}
	case KeyUp:
		return Binding{Action: ActionSelectPrev}
	case KeyDown:
		return Binding{Action: ActionSelectNext}
	case KeyRight:
		return Binding{Action: ActionStepForward}
	case KeyLeft:
		return Binding{Action: ActionStepBackward}
	}

	if event.Key >= '1' && event.Key <= '9' {
		return Binding{Action: ActionSelectIndex, Index: int(event.Key - '1')}
	}
	if action, ok := charBindings[event.Key]; ok {
		return Binding{Action: action}
	}
	return Binding{Action: ActionNone}
}

// HelpLines describes the key bindings for the help overlay
func HelpLines() []string {
	return []string{
		"space/enter  start or pause the selected timer",
		"r            reset the selected timer",
		"n / →        next step",
		"p / ←        previous step",
		"+ / -        add a minute / rewind a minute",
		"j k ↑ ↓ 1-9  select a timer",
		"S P X        start all / pause all / stop all",
		"s            cycle sort order",
		"l            toggle layout",
		"R            reload timer definitions",
		"q            quit",
	}
}
