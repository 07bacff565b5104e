package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-interval-timer/internal/application/monitor"
	"github.com/penwyp/go-interval-timer/internal/data/records"
	"github.com/penwyp/go-interval-timer/internal/presentation/formatter"
	"github.com/penwyp/go-interval-timer/internal/util"
)

var (
	recordsOutput  string
	recordsPath    string
	recordsStore   string
	recordsTimerID int
	recordsSince   string
	recordsLimit   int
	recordsZone    string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List completed timer runs",
	Long: `Lists the runs recorded when a timer finished or was stopped on its last
step, most recent first.

Examples:
  go-interval-timer records                     # Every run
  go-interval-timer records --since 2w3d        # Runs in the last 2 weeks and 3 days
  go-interval-timer records --timer 3 -o csv    # Runs of timer 3 as CSV
  go-interval-timer records -o summary          # Total time per timer`,
	RunE: runRecords,
}

func init() {
	rootCmd.AddCommand(recordsCmd)

	recordsCmd.Flags().StringVarP(&recordsOutput, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	recordsCmd.Flags().StringVar(&recordsPath, monitor.FlagRecords, "",
		"Record store path")
	recordsCmd.Flags().StringVar(&recordsStore, monitor.FlagStore, records.BackendJSONL,
		"Record store backend (jsonl, sqlite)")
	recordsCmd.Flags().IntVar(&recordsTimerID, "timer", 0,
		"Only runs of this timer id")
	recordsCmd.Flags().StringVarP(&recordsSince, "since", "s", "",
		"Time to look back (e.g., 12h, 7d, 2w, 1m, 1d12h)")
	recordsCmd.Flags().IntVar(&recordsLimit, "limit", 0,
		"Limit result count (0 = unlimited)")
	recordsCmd.Flags().StringVar(&recordsZone, monitor.FlagTimezone, "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
}

func runRecords(cmd *cobra.Command, args []string) error {
	initLogging()

	fc, err := loadFileConfig()
	if err != nil {
		return err
	}
	config := &monitor.Config{
		RecordsPath: recordsPath,
		RecordStore: recordsStore,
		Timezone:    recordsZone,
	}
	if err := fc.ApplyTo(config, cmd.Flags().Changed); err != nil {
		return err
	}
	if config.RecordsPath != "" {
		config.RecordsPath = expandPath(config.RecordsPath)
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if err := util.InitializeTimeProvider(config.Timezone); err != nil {
		return err
	}

	since, err := parseSince(recordsSince, time.Now())
	if err != nil {
		return err
	}

	store, err := records.Open(config.RecordStore, config.RecordsPath)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer store.Close()

	recs, err := store.ListRecords(cmd.Context(), records.Filter{
		TimerID: recordsTimerID,
		Since:   since,
		Limit:   recordsLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}

	f, err := formatter.New(recordsOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return f.FormatRecords(formatter.RecordRows(recs))
}

var sincePattern = regexp.MustCompile(`(\d+)([hymwd])`)

// parseSince turns a look-back like 2w3d into the time that far before now.
// Months count as 30 days and years as 365.
func parseSince(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	matches := sincePattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid duration format: %s", s)
	}

	var total time.Duration
	for _, match := range matches {
		value, err := strconv.Atoi(match[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid number in duration: %s", match[1])
		}

		day := 24 * time.Hour
		switch match[2] {
		case "h":
			total += time.Duration(value) * time.Hour
		case "d":
			total += time.Duration(value) * day
		case "w":
			total += time.Duration(value) * 7 * day
		case "m":
			total += time.Duration(value) * 30 * day
		case "y":
			total += time.Duration(value) * 365 * day
		}
	}
	return now.Add(-total), nil
}
