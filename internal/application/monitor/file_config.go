package monitor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-interval-timer/internal/presentation/layout"
)

// Flag names FileConfig.ApplyTo checks before overriding a setting
const (
	FlagTimersDir  = "timers"
	FlagRecords    = "records"
	FlagStore      = "store"
	FlagTick       = "tick"
	FlagRefresh    = "refresh-per-second"
	FlagTimezone   = "timezone"
	FlagTimeFormat = "time-format"
	FlagLayout     = "layout"
	FlagWatch      = "watch"
	FlagGoBack     = "go-back-on-notifier"
	FlagBell       = "bell"
)

// FileConfig is the optional settings file, config.yaml in the base dir
type FileConfig struct {
	TimersDir string `yaml:"timers_dir"`
	Records   struct {
		Store string `yaml:"store"`
		Path  string `yaml:"path"`
	} `yaml:"records"`
	TickInterval     time.Duration `yaml:"tick_interval"`
	UIRefreshRate    float64       `yaml:"refresh_per_second"`
	Timezone         string        `yaml:"timezone"`
	TimeFormat       string        `yaml:"time_format"`
	Layout           string        `yaml:"layout"`
	Watch            *bool         `yaml:"watch"`
	GoBackOnNotifier *bool         `yaml:"go_back_on_notifier"`
	Bell             *bool         `yaml:"bell"`
}

// DefaultFileConfigPath is ~/.go-interval-timer/config.yaml
func DefaultFileConfigPath() string {
	return filepath.Join(BaseDir(), "config.yaml")
}

// LoadFileConfig reads path. A missing file is an empty config.
func LoadFileConfig(path string) (*FileConfig, error) {
	fc := &FileConfig{}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return fc, nil
}

// ApplyTo copies file settings into c unless the matching flag was set on
// the command line. changed reports whether a flag was set.
func (f *FileConfig) ApplyTo(c *Config, changed func(flag string) bool) error {
	use := func(flag string, set bool) bool { return set && !changed(flag) }

	if use(FlagTimersDir, f.TimersDir != "") {
		c.TimersDir = f.TimersDir
	}
	if use(FlagStore, f.Records.Store != "") {
		c.RecordStore = f.Records.Store
	}
	if use(FlagRecords, f.Records.Path != "") {
		c.RecordsPath = f.Records.Path
	}
	if use(FlagTick, f.TickInterval != 0) {
		c.TickInterval = f.TickInterval
	}
	if use(FlagRefresh, f.UIRefreshRate != 0) {
		c.UIRefreshRate = f.UIRefreshRate
	}
	if use(FlagTimezone, f.Timezone != "") {
		c.Timezone = f.Timezone
	}
	if use(FlagTimeFormat, f.TimeFormat != "") {
		c.TimeFormat = f.TimeFormat
	}
	if use(FlagLayout, f.Layout != "") {
		style, err := ParseLayout(f.Layout)
		if err != nil {
			return err
		}
		c.LayoutStyle = style
	}
	if use(FlagWatch, f.Watch != nil) {
		c.Watch = *f.Watch
	}
	if use(FlagGoBack, f.GoBackOnNotifier != nil) {
		c.GoBackOnNotifier = *f.GoBackOnNotifier
	}
	if use(FlagBell, f.Bell != nil) {
		c.Bell = *f.Bell
	}
	return nil
}

// ParseLayout maps a layout name to its style
func ParseLayout(name string) (int, error) {
	switch name {
	case "", "full":
		return layout.StyleFull, nil
	case "minimal":
		return layout.StyleMinimal, nil
	}
	return 0, fmt.Errorf("invalid layout %q: must be full or minimal", name)
}
