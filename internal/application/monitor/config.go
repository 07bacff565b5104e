package monitor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/penwyp/go-interval-timer/internal/data/records"
	"github.com/penwyp/go-interval-timer/internal/presentation/layout"
)

// BaseDirName is the settings directory below the user's home
const BaseDirName = ".go-interval-timer"

// Config contains configuration for the run and shell commands
type Config struct {
	// Data locations
	TimersDir   string
	RecordsPath string
	RecordStore string // jsonl, sqlite, memory

	// Clock settings
	TickInterval     time.Duration
	GoBackOnNotifier bool

	// Display settings
	UIRefreshRate float64
	Timezone      string
	TimeFormat    string
	LayoutStyle   int
	Bell          bool
	Out           io.Writer

	// Watch reloads timer definitions when their files change
	Watch bool
	// Start lists timers started as soon as the loop runs
	Start []int

	// Performance settings
	Concurrency int
}

// BaseDir returns ~/.go-interval-timer, or a relative directory when the
// home directory cannot be found
func BaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return BaseDirName
	}
	return filepath.Join(home, BaseDirName)
}

// Validate fills defaults and rejects settings that cannot work
func (c *Config) Validate() error {
	if c.TimersDir == "" {
		c.TimersDir = filepath.Join(BaseDir(), "timers")
	}
	if c.RecordStore == "" {
		c.RecordStore = records.BackendJSONL
	}
	if c.RecordsPath == "" {
		switch c.RecordStore {
		case records.BackendSQLite:
			c.RecordsPath = filepath.Join(BaseDir(), "records.db")
		default:
			c.RecordsPath = filepath.Join(BaseDir(), "records.jsonl")
		}
	}
	switch c.RecordStore {
	case records.BackendJSONL, records.BackendSQLite, records.BackendMemory:
	default:
		return fmt.Errorf("%w: %q", records.ErrUnknownBackend, c.RecordStore)
	}

	if c.TickInterval == 0 {
		c.TickInterval = 100 * time.Millisecond
	}
	if c.TickInterval < 10*time.Millisecond || c.TickInterval > time.Second {
		return fmt.Errorf("tick interval must be between 10ms and 1s, got %s", c.TickInterval)
	}
	if c.UIRefreshRate == 0 {
		c.UIRefreshRate = 2
	}
	if c.UIRefreshRate < 0.1 || c.UIRefreshRate > 20 {
		return fmt.Errorf("refresh rate must be between 0.1 and 20 Hz, got %g", c.UIRefreshRate)
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "24h"
	}
	if c.TimeFormat != "12h" && c.TimeFormat != "24h" {
		return fmt.Errorf("invalid time format '%s': must be either '12h' or '24h'", c.TimeFormat)
	}
	if c.LayoutStyle != layout.StyleFull && c.LayoutStyle != layout.StyleMinimal {
		c.LayoutStyle = layout.StyleFull
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Concurrency == 0 {
		c.Concurrency = runtime.NumCPU()
	}
	return nil
}

// uiInterval is the dashboard redraw period
func (c *Config) uiInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.UIRefreshRate)
}
