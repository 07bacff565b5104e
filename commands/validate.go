package commands

import (
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-interval-timer/internal/data/parser"
	"github.com/penwyp/go-interval-timer/internal/data/scanner"
)

var errInvalidDefinitions = errors.New("invalid timer definitions")

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check timer definition files",
	Long: `Parses and validates timer definitions. With no arguments every file in the
timer directory is checked. Duplicate timer ids across files are reported; the
first file in lexical order wins when timers are loaded.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	initLogging()

	files := args
	if len(files) == 0 {
		dir, err := resolveTimersDir(cmd)
		if err != nil {
			return err
		}
		files, err = scanner.NewFileScanner(dir).Scan()
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", dir, err)
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No timer definition files found")
		return nil
	}

	failed := validateFiles(cmd, files)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files failed", errInvalidDefinitions, failed, len(files))
	}
	return nil
}

// validateFiles prints one line per file and returns how many failed
func validateFiles(cmd *cobra.Command, files []string) int {
	results := make(map[string]parser.ParseResult, len(files))
	for result := range parser.NewParser(runtime.NumCPU()).ParseFiles(files) {
		results[result.File] = result
	}

	out := cmd.OutOrStdout()
	owners := make(map[int]string)
	failed := 0
	for _, file := range slices.Sorted(slices.Values(files)) {
		result := results[file]
		if result.Error != nil {
			failed++
			fmt.Fprintf(out, "✗ %s: %v\n", file, result.Error)
			continue
		}

		var duplicates []int
		for _, t := range result.Timers {
			if owner, ok := owners[t.ID]; ok && owner != file {
				duplicates = append(duplicates, t.ID)
				continue
			}
			owners[t.ID] = file
		}
		if len(duplicates) > 0 {
			failed++
			fmt.Fprintf(out, "✗ %s: duplicate timer ids %v\n", file, duplicates)
			continue
		}
		fmt.Fprintf(out, "✓ %s (%d timers)\n", file, len(result.Timers))
	}
	return failed
}
