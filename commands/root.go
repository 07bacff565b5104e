package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-interval-timer/internal/application/monitor"
	"github.com/penwyp/go-interval-timer/internal/data/library"
	"github.com/penwyp/go-interval-timer/internal/presentation/formatter"
	"github.com/penwyp/go-interval-timer/internal/util"
)

var (
	// Logging related
	debug     bool
	logFormat string

	// Data path
	timersDir  string
	configFile string

	// Output related
	outputFormat string

	rootCmd = &cobra.Command{
		Use:   "go-interval-timer [flags]",
		Short: "Interval timer for the terminal",
		Long: `go-interval-timer runs interval timers defined in JSON or YAML files.

A timer is a list of steps, optionally grouped and repeated, with sounds, speech
and notifications attached to each step. Several timers can run at once.

Examples:
  go-interval-timer                          # List timers in ~/.go-interval-timer/timers
  go-interval-timer --output json            # List timers as JSON
  go-interval-timer run --start 1            # Open the dashboard and start timer 1
  go-interval-timer shell                    # Control timers from a prompt
  go-interval-timer validate                 # Check every definition file
  go-interval-timer records --since 7d       # Show runs completed in the last week`,
		RunE:         runList,
		SilenceUsage: true,
	}
)

const (
	defaultLogFile     = "~/" + monitor.BaseDirName + "/logs/app.log"
	defaultTimersDir   = "~/" + monitor.BaseDirName + "/timers"
	defaultConfigFile  = "~/" + monitor.BaseDirName + "/config.yaml"
	defaultHistoryFile = "~/" + monitor.BaseDirName + "/history/shell_history"
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&timersDir, monitor.FlagTimersDir, defaultTimersDir,
		"Timer definition directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigFile,
		"Settings file")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log file format (text, json)")
}

func Execute() error {
	return rootCmd.Execute()
}

// initLogging sets up the file logger shared by every command
func initLogging() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLoggerWithFormat(logLevel, logFile, util.ParseLogFormat(logFormat), debug)
}

// loadFileConfig reads the settings file named by --config
func loadFileConfig() (*monitor.FileConfig, error) {
	return monitor.LoadFileConfig(expandPath(configFile))
}

// resolveTimersDir applies the settings file to --timers
func resolveTimersDir(cmd *cobra.Command) (string, error) {
	fc, err := loadFileConfig()
	if err != nil {
		return "", err
	}
	config := &monitor.Config{TimersDir: timersDir}
	if err := fc.ApplyTo(config, cmd.Flags().Changed); err != nil {
		return "", err
	}
	return expandPath(config.TimersDir), nil
}

func runList(cmd *cobra.Command, args []string) error {
	initLogging()

	dir, err := resolveTimersDir(cmd)
	if err != nil {
		return err
	}

	lib := library.New(dir, runtime.NumCPU())
	if err := lib.Reload(); err != nil {
		return fmt.Errorf("failed to load timers: %w", err)
	}

	f, err := formatter.New(outputFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	rows := formatter.TimerRows(lib.Timers(), func(id int) string {
		source, _ := lib.Source(id)
		return source
	})
	if err := f.FormatTimers(rows); err != nil {
		return err
	}

	reportProblems(cmd, lib.Problems())
	return nil
}

// reportProblems lists the definition files that failed to load
func reportProblems(cmd *cobra.Command, problems map[string]error) {
	files := make([]string, 0, len(problems))
	for file := range problems {
		files = append(files, file)
	}
	slices.Sort(files)
	for _, file := range files {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", file, problems[file])
	}
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
