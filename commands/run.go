package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-interval-timer/internal/application/monitor"
	"github.com/penwyp/go-interval-timer/internal/data/records"
)

// runtimeOptions are the flags shared by run and shell
type runtimeOptions struct {
	recordsPath      string
	recordStore      string
	tick             time.Duration
	refreshPerSecond float64
	timezone         string
	timeFormat       string
	layout           string
	watch            bool
	bell             bool
	goBackOnNotifier bool
	start            []int
}

var (
	runOpts   runtimeOptions
	shellOpts runtimeOptions
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the live timer dashboard",
	Long: `Opens a full-screen dashboard listing every timer. Running timers show their
current step, step clock, loop and overall progress.

Keys:
  space/enter start or pause   r reset      n/p next/previous step
  +/-         add/rewind 1m    j/k select   S/P/X start/pause/stop all
  s sort      l layout         R reload     ? help     q quit`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRuntimeFlags(runCmd, &runOpts)
}

// addRuntimeFlags registers the runtime flags of opts on cmd
func addRuntimeFlags(cmd *cobra.Command, opts *runtimeOptions) {
	// Record flags
	cmd.Flags().StringVar(&opts.recordsPath, monitor.FlagRecords, "",
		"Record store path (default ~/.go-interval-timer/records.jsonl or records.db)")
	cmd.Flags().StringVar(&opts.recordStore, monitor.FlagStore, records.BackendJSONL,
		"Record store backend (jsonl, sqlite, memory)")

	// Clock flags
	cmd.Flags().DurationVar(&opts.tick, monitor.FlagTick, 100*time.Millisecond,
		"Clock tick interval (10ms-1s)")
	cmd.Flags().BoolVar(&opts.goBackOnNotifier, monitor.FlagGoBack, false,
		"Adding time on a notifier step returns to the previous step")
	cmd.Flags().IntSliceVar(&opts.start, "start", nil,
		"Timer ids to start immediately")

	// Display flags
	cmd.Flags().Float64Var(&opts.refreshPerSecond, monitor.FlagRefresh, 2,
		"Display refresh rate (0.1-20 Hz)")
	cmd.Flags().StringVar(&opts.timezone, monitor.FlagTimezone, "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	cmd.Flags().StringVar(&opts.timeFormat, monitor.FlagTimeFormat, "24h",
		"Time format (12h or 24h)")
	cmd.Flags().StringVar(&opts.layout, monitor.FlagLayout, "full",
		"Dashboard layout (full, minimal)")
	cmd.Flags().BoolVar(&opts.bell, monitor.FlagBell, false,
		"Ring the terminal bell for tones")
	cmd.Flags().BoolVar(&opts.watch, monitor.FlagWatch, false,
		"Reload timer definitions when their files change")
}

// buildConfig merges flags and the settings file. Flags set on the command
// line win.
func buildConfig(cmd *cobra.Command, opts *runtimeOptions) (*monitor.Config, error) {
	style, err := monitor.ParseLayout(opts.layout)
	if err != nil {
		return nil, err
	}

	config := &monitor.Config{
		TimersDir:        timersDir,
		RecordsPath:      opts.recordsPath,
		RecordStore:      opts.recordStore,
		TickInterval:     opts.tick,
		GoBackOnNotifier: opts.goBackOnNotifier,
		UIRefreshRate:    opts.refreshPerSecond,
		Timezone:         opts.timezone,
		TimeFormat:       opts.timeFormat,
		LayoutStyle:      style,
		Bell:             opts.bell,
		Watch:            opts.watch,
		Start:            opts.start,
	}

	fc, err := loadFileConfig()
	if err != nil {
		return nil, err
	}
	if err := fc.ApplyTo(config, cmd.Flags().Changed); err != nil {
		return nil, err
	}

	if config.Timezone == "auto" {
		config.Timezone = "Local"
	}
	config.TimersDir = expandPath(config.TimersDir)
	if config.RecordsPath != "" {
		config.RecordsPath = expandPath(config.RecordsPath)
	}
	return config, nil
}

// signalContext is cancelled on interrupt or terminate
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	initLogging()

	config, err := buildConfig(cmd, &runOpts)
	if err != nil {
		return err
	}

	orchestrator, err := monitor.NewOrchestrator(config)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	return orchestrator.Run(ctx)
}
