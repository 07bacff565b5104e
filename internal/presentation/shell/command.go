// Package shell is the line-oriented control console. It parses commands and
// hands them to the event loop; it never touches timers itself.
package shell

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingID      = errors.New("timer id required")
)

// DefaultAmount is what add adds when no amount is given
const DefaultAmount = time.Minute

// Verb names a console command
type Verb string

const (
	VerbStart    Verb = "start"
	VerbPause    Verb = "pause"
	VerbReset    Verb = "reset"
	VerbNext     Verb = "next"
	VerbPrev     Verb = "prev"
	VerbAdd      Verb = "add"
	VerbRewind   Verb = "rewind"
	VerbStartAll Verb = "startall"
	VerbPauseAll Verb = "pauseall"
	VerbStopAll  Verb = "stopall"
	VerbList     Verb = "list"
	VerbStatus   Verb = "status"
	VerbRecords  Verb = "records"
	VerbReload   Verb = "reload"
	VerbHelp     Verb = "help"
	VerbQuit     Verb = "quit"
)

var aliases = map[string]Verb{
	"s":    VerbStart,
	"p":    VerbPause,
	"n":    VerbNext,
	"b":    VerbPrev,
	"back": VerbPrev,
	"ls":   VerbList,
	"st":   VerbStatus,
	"?":    VerbHelp,
	"q":    VerbQuit,
	"exit": VerbQuit,
}

// perTimer verbs take a timer id as their first argument
var perTimer = map[Verb]bool{
	VerbStart:  true,
	VerbPause:  true,
	VerbReset:  true,
	VerbNext:   true,
	VerbPrev:   true,
	VerbAdd:    true,
	VerbRewind: true,
}

// Verbs lists every command in help order
var Verbs = []Verb{
	VerbList, VerbStatus, VerbStart, VerbPause, VerbReset, VerbNext, VerbPrev,
	VerbAdd, VerbRewind, VerbStartAll, VerbPauseAll, VerbStopAll,
	VerbRecords, VerbReload, VerbHelp, VerbQuit,
}

// Command is a parsed console line. ID is 0 for commands that do not address
// one timer. Amount is signed and only set for add.
type Command struct {
	Verb   Verb
	ID     int
	Amount time.Duration
}

// Parse reads one console line. Blank lines yield the zero Command.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, nil
	}

	name := strings.ToLower(fields[0])
	verb, ok := aliases[name]
	if !ok {
		verb = Verb(name)
	}
	if !slices.Contains(Verbs, verb) {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	cmd := Command{Verb: verb}
	args := fields[1:]
	if !perTimer[verb] {
		// status optionally narrows to one timer
		if verb == VerbStatus && len(args) > 0 {
			id, err := parseID(args[0])
			if err != nil {
				return Command{}, err
			}
			cmd.ID = id
		}
		return cmd, nil
	}

	if len(args) == 0 {
		return Command{}, fmt.Errorf("%w for %s", ErrMissingID, verb)
	}
	id, err := parseID(args[0])
	if err != nil {
		return Command{}, err
	}
	cmd.ID = id

	if verb == VerbAdd {
		cmd.Amount = DefaultAmount
		if len(args) > 1 {
			amount, err := parseAmount(args[1])
			if err != nil {
				return Command{}, err
			}
			cmd.Amount = amount
		}
	}
	return cmd, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid timer id %q", s)
	}
	return id, nil
}

// parseAmount accepts a Go duration or a plain number of seconds
func parseAmount(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// HelpText describes every command
func HelpText() string {
	return `Commands:
  list                 - List timer definitions
  status [id]          - Show running timers
  start <id>           - Start or resume a timer
  pause <id>           - Pause a timer
  reset <id>           - Stop a timer
  next <id>            - Skip to the next step
  prev <id>            - Go back one step
  add <id> [amount]    - Add time to the current step (default 1m, negative subtracts)
  rewind <id>          - Take a minute off the current step
  startall             - Start every paused timer
  pauseall             - Pause every running timer
  stopall              - Stop every timer
  records              - Show recent completion records
  reload               - Reload timer definitions
  help                 - Show this help
  quit                 - Leave the console`
}
