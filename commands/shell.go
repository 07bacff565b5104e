package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-interval-timer/internal/application/monitor"
	"github.com/penwyp/go-interval-timer/internal/presentation/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Control timers from an interactive prompt",
	Long: `Starts a prompt that runs timers in the background. Type help for the
command list. Status messages are printed as timers finish or stop.`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
	addRuntimeFlags(shellCmd, &shellOpts)
}

func runShell(cmd *cobra.Command, args []string) error {
	initLogging()

	config, err := buildConfig(cmd, &shellOpts)
	if err != nil {
		return err
	}

	historyFile := expandPath(defaultHistoryFile)
	if err := ensureDir(filepath.Dir(historyFile)); err != nil {
		historyFile = ""
	}
	console, err := shell.NewConsole(shell.Config{
		Prompt:      "timer> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		return err
	}
	config.Out = console.Stdout()

	orchestrator, err := monitor.NewOrchestrator(config)
	if err != nil {
		console.Close()
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	return orchestrator.RunShell(ctx, console)
}
