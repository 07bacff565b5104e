package monitor

import (
	"fmt"

	"github.com/penwyp/go-interval-timer/internal/presentation/interaction"
	"github.com/penwyp/go-interval-timer/internal/presentation/shell"
)

// handleKeyboard applies one key press. It returns true when the dashboard
// should exit.
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	binding := interaction.Resolve(event)

	if dialog := o.state.Confirm(); dialog != nil {
		o.state.SetConfirm(nil)
		if binding.Action == interaction.ActionConfirm {
			dialog.OnConfirm()
		} else {
			o.state.SetStatus("Cancelled")
		}
		return false
	}

	if o.state.ShowHelp() && binding.Action != interaction.ActionQuit {
		o.state.ToggleHelp()
		return false
	}

	switch binding.Action {
	case interaction.ActionQuit:
		return true
	case interaction.ActionCancel:
		return event.Type == interaction.KeyEscape
	case interaction.ActionHelp:
		o.state.ToggleHelp()
	case interaction.ActionToggleLayout:
		o.display.ToggleLayout()
	case interaction.ActionCycleSort:
		field := o.sorter.Next()
		o.state.SetStatus(fmt.Sprintf("Sorted by %s", field))
	case interaction.ActionSelectNext:
		o.moveSelection(1)
	case interaction.ActionSelectPrev:
		o.moveSelection(-1)
	case interaction.ActionSelectIndex:
		rows := o.buildView().Rows
		if binding.Index < len(rows) {
			o.state.Select(rows[binding.Index].Timer.ID)
		}
	case interaction.ActionStartAll:
		o.state.SetStatus(o.Execute(shell.Command{Verb: shell.VerbStartAll}))
	case interaction.ActionPauseAll:
		o.state.SetStatus(o.Execute(shell.Command{Verb: shell.VerbPauseAll}))
	case interaction.ActionStopAll:
		o.state.SetConfirm(&ConfirmDialog{
			Prompt: "Stop all timers?",
			OnConfirm: func() {
				o.state.SetStatus(o.Execute(shell.Command{Verb: shell.VerbStopAll}))
			},
		})
	case interaction.ActionReload:
		o.state.SetStatus(o.Execute(shell.Command{Verb: shell.VerbReload}))
	default:
		if cmd, ok := o.selectedCommand(binding.Action); ok {
			o.state.SetStatus(o.Execute(cmd))
		}
	}
	return false
}

// selectedCommand turns a per-timer action into a command on the selected
// timer
func (o *Orchestrator) selectedCommand(action interaction.Action) (shell.Command, bool) {
	id := o.state.SelectedID()
	if id == 0 {
		return shell.Command{}, false
	}
	cmd := shell.Command{ID: id}
	switch action {
	case interaction.ActionToggle:
		cmd.Verb = shell.VerbStart
		if info, ok := o.coord.Info(id); ok && info.State.IsRunning() {
			cmd.Verb = shell.VerbPause
		}
	case interaction.ActionReset:
		cmd.Verb = shell.VerbReset
	case interaction.ActionStepForward:
		cmd.Verb = shell.VerbNext
	case interaction.ActionStepBackward:
		cmd.Verb = shell.VerbPrev
	case interaction.ActionAddMinute:
		cmd.Verb = shell.VerbAdd
		cmd.Amount = shell.DefaultAmount
	case interaction.ActionRewindMinute:
		cmd.Verb = shell.VerbRewind
	default:
		return shell.Command{}, false
	}
	return cmd, true
}

// moveSelection selects the row delta rows away, wrapping around
func (o *Orchestrator) moveSelection(delta int) {
	rows := o.buildView().Rows
	if len(rows) == 0 {
		return
	}
	current := 0
	for i, row := range rows {
		if row.Selected {
			current = i
			break
		}
	}
	next := (current + delta + len(rows)) % len(rows)
	o.state.Select(rows[next].Timer.ID)
}
