package monitor

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/coordinator"
	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/data/records"
	"github.com/penwyp/go-interval-timer/internal/presentation/formatter"
	"github.com/penwyp/go-interval-timer/internal/presentation/interaction"
	"github.com/penwyp/go-interval-timer/internal/presentation/layout"
	"github.com/penwyp/go-interval-timer/internal/presentation/shell"
	"github.com/penwyp/go-interval-timer/internal/util"
)

// recentRecords is how many records the records command shows
const recentRecords = 10

// Execute runs one console command on the loop and returns its reply
func (o *Orchestrator) Execute(cmd shell.Command) string {
	switch cmd.Verb {
	case shell.VerbList:
		return o.listText()
	case shell.VerbStatus:
		return o.statusText()
	case shell.VerbRecords:
		return o.recordsText()
	case shell.VerbReload:
		if err := o.library.Reload(); err != nil {
			return fmt.Sprintf("Reload failed: %v", err)
		}
		return o.loadedText()
	case shell.VerbHelp:
		return shell.HelpText()
	case shell.VerbStartAll:
		o.coord.StartAll()
		return "Started all timers"
	case shell.VerbPauseAll:
		paused := o.coord.PauseAll()
		return fmt.Sprintf("Paused %d timers", len(paused))
	case shell.VerbStopAll:
		o.coord.StopAll()
		return "Stopped all timers"
	}

	timer, ok := o.lookupTimer(cmd.ID)
	if !ok {
		return fmt.Sprintf("Timer %d not found", cmd.ID)
	}
	name := timer.Name

	if cmd.Verb == shell.VerbStart {
		if o.coord.Running(cmd.ID) {
			if info, ok := o.coord.Info(cmd.ID); ok && info.State.IsRunning() {
				return fmt.Sprintf("%s is already running", name)
			}
		}
		o.coord.StartTimer(cmd.ID, nil)
		return fmt.Sprintf("Starting %s", name)
	}

	if !o.coord.Running(cmd.ID) {
		return fmt.Sprintf("%s is not running", name)
	}
	switch cmd.Verb {
	case shell.VerbPause:
		o.coord.PauseTimer(cmd.ID)
		return fmt.Sprintf("Paused %s", name)
	case shell.VerbReset:
		o.coord.ResetTimer(cmd.ID)
		return fmt.Sprintf("Reset %s", name)
	case shell.VerbNext:
		o.coord.StepForward(cmd.ID)
		return fmt.Sprintf("%s: %s", name, o.stepText(cmd.ID))
	case shell.VerbPrev:
		o.coord.StepBackward(cmd.ID)
		return fmt.Sprintf("%s: %s", name, o.stepText(cmd.ID))
	case shell.VerbAdd:
		o.coord.AdjustAmount(cmd.ID, cmd.Amount, o.config.GoBackOnNotifier)
		return fmt.Sprintf("Added %s to %s", util.FormatDuration(cmd.Amount), name)
	case shell.VerbRewind:
		o.coord.RewindOneMinute(cmd.ID)
		return fmt.Sprintf("Rewound %s by one minute", name)
	}
	return fmt.Sprintf("Unsupported command %q", cmd.Verb)
}

// lookupTimer prefers the definition a live machine runs over the loaded one
func (o *Orchestrator) lookupTimer(id int) (*model.Timer, bool) {
	if info, ok := o.coord.Info(id); ok {
		return info.Timer, true
	}
	for _, t := range o.library.Timers() {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// timerName names id for status messages
func (o *Orchestrator) timerName(id int) string {
	if t, ok := o.lookupTimer(id); ok && t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("Timer %d", id)
}

func (o *Orchestrator) stepText(id int) string {
	info, ok := o.coord.Info(id)
	if !ok {
		return "stopped"
	}
	row := layout.Row{Info: info, Running: true}
	return fmt.Sprintf("%s %s", row.StepLabel(), row.ClockText())
}

func (o *Orchestrator) loadedText() string {
	text := fmt.Sprintf("Loaded %d timers", len(o.library.Timers()))
	if n := len(o.library.Problems()); n > 0 {
		text += fmt.Sprintf(" (%d files failed)", n)
	}
	return text
}

func (o *Orchestrator) listText() string {
	timers := o.library.Timers()
	if len(timers) == 0 {
		return fmt.Sprintf("No timers found in %s", o.config.TimersDir)
	}

	var buf bytes.Buffer
	table := formatter.NewTableFormatter(&buf)
	if err := table.FormatTimers(formatter.TimerRows(timers, nil)); err != nil {
		return fmt.Sprintf("Failed to list timers: %v", err)
	}

	problems := o.library.Problems()
	files := make([]string, 0, len(problems))
	for file := range problems {
		files = append(files, file)
	}
	slices.Sort(files)
	for _, file := range files {
		fmt.Fprintf(&buf, "! %s: %v\n", file, problems[file])
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (o *Orchestrator) statusText() string {
	infos := o.coord.Infos()
	if len(infos) == 0 {
		return "No timers running"
	}
	o.sorter.Sort(infos)

	lines := []string{fmt.Sprintf("Mode: %s", o.coord.Mode())}
	for _, info := range infos {
		row := layout.Row{Info: info, Running: true}
		lines = append(lines, fmt.Sprintf("%s %d %s  %s  %s  loop %s  %s left",
			row.StateIcon(), info.Timer.ID, info.Timer.Name,
			row.StepLabel(), row.ClockText(), row.LoopText(),
			util.FormatClock(row.Remaining())))
	}
	for _, effect := range o.surface.Effects() {
		lines = append(lines, "  "+effect)
	}
	return strings.Join(lines, "\n")
}

func (o *Orchestrator) recordsText() string {
	recs, err := o.store.ListRecords(o.ctx, records.Filter{Limit: recentRecords})
	if err != nil {
		return fmt.Sprintf("Failed to read records: %v", err)
	}
	if len(recs) == 0 {
		return "No records yet"
	}
	var buf bytes.Buffer
	table := formatter.NewTableFormatter(&buf)
	if err := table.FormatRecords(formatter.RecordRows(recs)); err != nil {
		return fmt.Sprintf("Failed to read records: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// buildView merges the loaded definitions with the live machines
func (o *Orchestrator) buildView() layout.View {
	infos := o.coord.Infos()
	running := make(map[int]bool, len(infos))
	for _, info := range infos {
		running[info.Timer.ID] = true
	}
	for _, t := range o.library.Timers() {
		if !running[t.ID] {
			infos = append(infos, coordinator.Info{Timer: t})
		}
	}
	o.sorter.Sort(infos)

	selected := o.state.SelectedID()
	if selected == 0 && len(infos) > 0 {
		selected = infos[0].Timer.ID
		o.state.Select(selected)
	}

	view := layout.View{
		Now:        util.GetTimeProvider().In(time.Now()),
		TwelveHour: o.config.TimeFormat == "12h",
		Mode:       o.coord.Mode(),
		Effects:    o.surface.Effects(),
		Status:     o.state.Status(),
		SortField:  o.sorter.Field().String(),
	}
	for _, info := range infos {
		view.Rows = append(view.Rows, layout.Row{
			Info:     info,
			Running:  running[info.Timer.ID],
			Selected: info.Timer.ID == selected,
		})
	}
	if o.state.ShowHelp() {
		view.Help = interaction.HelpLines()
	}
	if dialog := o.state.Confirm(); dialog != nil {
		view.Confirm = dialog.Prompt
	}
	return view
}

func (o *Orchestrator) render() {
	o.display.Render(o.buildView())
}
