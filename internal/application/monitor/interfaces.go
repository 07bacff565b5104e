package monitor

import (
	"github.com/penwyp/go-interval-timer/internal/core/coordinator"
	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/core/monitoring"
	"github.com/penwyp/go-interval-timer/internal/presentation/interaction"
	"github.com/penwyp/go-interval-timer/internal/presentation/layout"
)

// TimerSource serves timer definitions
type TimerSource interface {
	coordinator.Loader
	// Reload rescans the definitions
	Reload() error
	// Timers returns every definition sorted by id
	Timers() []*model.Timer
	// Source returns the file that defined id
	Source(id int) (string, bool)
	// Problems returns the files that failed to load
	Problems() map[string]error
}

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen()
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen()
	// ClearScreen clears the terminal screen
	ClearScreen()
	// Render draws one dashboard frame
	Render(view layout.View)
	// ToggleLayout switches the layout strategy
	ToggleLayout() int
}

// InputHandler processes keyboard input events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}

// FileMonitor watches for file changes
type FileMonitor interface {
	// Events returns a channel of file change events
	Events() <-chan monitoring.FileEvent
	// Close stops monitoring and cleans up resources
	Close() error
}
