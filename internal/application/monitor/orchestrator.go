// Package monitor runs the event loop that owns the coordinator and drives
// the dashboard and the control console.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/coordinator"
	"github.com/penwyp/go-interval-timer/internal/core/monitoring"
	"github.com/penwyp/go-interval-timer/internal/data/library"
	"github.com/penwyp/go-interval-timer/internal/data/records"
	"github.com/penwyp/go-interval-timer/internal/presentation/display"
	"github.com/penwyp/go-interval-timer/internal/presentation/interaction"
	"github.com/penwyp/go-interval-timer/internal/presentation/shell"
	"github.com/penwyp/go-interval-timer/internal/util"
)

// Orchestrator owns the coordinator and every input that drives it. All
// coordinator calls happen on the goroutine running the loop.
type Orchestrator struct {
	config *Config
	ctx    context.Context
	cancel context.CancelFunc
	logger util.LoggerInterface

	// Core components
	library TimerSource
	store   records.Store
	surface *display.Surface
	coord   *coordinator.Coordinator
	runner  loopRunner
	posted  chan func()

	// UI components
	display  DisplayController
	sorter   *interaction.TimerSorter
	state    *StateManager
	keyboard InputHandler

	// Monitoring
	watcher FileMonitor

	// notify receives status messages in console mode
	notify    io.Writer
	closeOnce sync.Once
}

// NewOrchestrator loads the timer definitions and opens the record store
func NewOrchestrator(config *Config) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := util.InitializeTimeProvider(config.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize timezone: %w", err)
	}

	if err := os.MkdirAll(config.TimersDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create timers directory: %w", err)
	}
	lib := library.New(config.TimersDir, config.Concurrency)
	if err := lib.Reload(); err != nil {
		return nil, fmt.Errorf("failed to load timers: %w", err)
	}

	if config.RecordStore != records.BackendMemory {
		if err := os.MkdirAll(filepath.Dir(config.RecordsPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create records directory: %w", err)
		}
	}
	store, err := records.Open(config.RecordStore, config.RecordsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	return newOrchestrator(config, lib, store), nil
}

func newOrchestrator(config *Config, source TimerSource, store records.Store) *Orchestrator {
	ctx, cancel := context.WithCancel(context.Background())
	posted := make(chan func(), 16)

	o := &Orchestrator{
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
		logger:  util.Named("monitor"),
		library: source,
		store:   store,
		runner:  newLoopRunner(ctx, posted),
		posted:  posted,
		sorter:  interaction.NewTimerSorter(),
		state:   NewStateManager(),
	}
	o.surface = display.NewSurface(display.SurfaceConfig{
		Post: o.runner.post,
		Out:  config.Out,
		Bell: config.Bell,
	})
	o.coord = coordinator.New(ctx, o.surface, source, store, coordinator.Config{
		Runner:     o.runner,
		TwelveHour: config.TimeFormat == "12h",
	})
	o.coord.AddAllListener(&statusListener{o: o})
	o.display = display.NewTerminalDisplay(display.DisplayConfig{
		Out:         config.Out,
		LayoutStyle: config.LayoutStyle,
	})
	return o
}

// Run shows the live dashboard until the user quits or ctx is done
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting interval timer dashboard...")
	defer o.Close()

	keyboard, err := interaction.NewKeyboardReader(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard
	defer o.keyboard.Close()

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	if err := o.startWatcher(); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	o.startConfigured()

	return o.loop(ctx, nil, true)
}

// RunShell serves the control console until it quits or ctx is done
func (o *Orchestrator) RunShell(ctx context.Context, console *shell.Console) error {
	util.LogInfo("Starting interval timer console...")
	defer o.Close()

	o.notify = console.Stdout()
	if err := o.startWatcher(); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	o.startConfigured()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	requests := make(chan shell.Request)
	consoleErr := make(chan error, 1)
	go func() {
		consoleErr <- console.Run(ctx, requests)
		cancel()
	}()

	if err := o.loop(ctx, requests, false); err != nil {
		return err
	}
	select {
	case err := <-consoleErr:
		return err
	default:
		return console.Close()
	}
}

// startConfigured starts the timers named in the config
func (o *Orchestrator) startConfigured() {
	for _, id := range o.config.Start {
		o.logger.Infof("Starting timer %d", id)
		o.coord.StartTimer(id, nil)
	}
}

// loop is the only goroutine that touches the coordinator
func (o *Orchestrator) loop(ctx context.Context, requests <-chan shell.Request, dashboard bool) error {
	tick := time.NewTicker(o.config.TickInterval)
	defer tick.Stop()

	var redraw <-chan time.Time
	if dashboard {
		uiTicker := time.NewTicker(o.config.uiInterval())
		defer uiTicker.Stop()
		redraw = uiTicker.C
		o.render()
	}

	var keys <-chan interaction.KeyEvent
	if o.keyboard != nil {
		keys = o.keyboard.Events()
	}
	var files <-chan monitoring.FileEvent
	if o.watcher != nil {
		files = o.watcher.Events()
	}

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down interval timer...")
			return nil

		case now := <-tick.C:
			o.coord.Tick(now.Sub(last))
			last = now

		case <-redraw:
			o.render()

		case f := <-o.posted:
			f()

		case event, ok := <-files:
			if !ok {
				files = nil
				continue
			}
			o.handleFileChange(event)

		case key := <-keys:
			if o.handleKeyboard(key) {
				return nil
			}
			o.render()

		case req := <-requests:
			req.Reply <- o.Execute(req.Command)
		}
	}
}

// startWatcher watches the timers directory when Watch is set
func (o *Orchestrator) startWatcher() error {
	if !o.config.Watch {
		return nil
	}
	watcher, err := monitoring.NewFileWatcher([]string{o.config.TimersDir})
	if err != nil {
		return err
	}
	o.watcher = watcher
	return nil
}

// handleFileChange reloads the definitions off the loop. Running timers keep
// the definition they started with.
func (o *Orchestrator) handleFileChange(event monitoring.FileEvent) {
	o.logger.Debugf("File changed: %s (%s)", event.Path, event.Operation)

	var err error
	o.runner.Run(func() {
		err = o.library.Reload()
	}, func() {
		if err != nil {
			o.logger.Errorf("Failed to reload timers: %v", err)
			o.announce(fmt.Sprintf("Reload failed: %v", err))
			return
		}
		o.announce(o.loadedText())
	})
}

// announce shows a status message on the dashboard or console
func (o *Orchestrator) announce(msg string) {
	o.logger.Info(msg)
	o.state.SetStatus(msg)
	if o.notify != nil {
		fmt.Fprintln(o.notify, msg)
	}
}

// Close stops every timer and releases the store and watcher
func (o *Orchestrator) Close() error {
	var errs []error
	o.closeOnce.Do(func() {
		o.coord.Close()
		o.runner.wait()
		o.cancel()

		if o.watcher != nil {
			if err := o.watcher.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close file watcher: %w", err))
			}
		}
		if err := o.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close record store: %w", err))
		}
	})
	return errors.Join(errs...)
}

// statusListener turns lifecycle events into status messages
type statusListener struct {
	coordinator.NopListener
	o *Orchestrator
}

func (l *statusListener) End(id int, forced bool) {
	if forced {
		l.o.announce(fmt.Sprintf("%s stopped", l.o.timerName(id)))
		return
	}
	l.o.announce(fmt.Sprintf("%s finished", l.o.timerName(id)))
}
