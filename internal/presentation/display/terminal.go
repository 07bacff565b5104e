package display

import (
	"bytes"
	"io"
	"strings"

	"github.com/penwyp/go-interval-timer/internal/presentation/layout"
	"github.com/penwyp/go-interval-timer/internal/util"
)

const clearToEnd = "\033[J"

// DisplayConfig controls how the dashboard is drawn
type DisplayConfig struct {
	Out         io.Writer
	LayoutStyle int
	// Width overrides the terminal width when positive
	Width int
}

// TerminalDisplay draws dashboard frames on an alternate screen
type TerminalDisplay struct {
	config            DisplayConfig
	inAlternateScreen bool
	lastLayoutStyle   int
	lastFrame         string
	isFirstRender     bool
}

func NewTerminalDisplay(config DisplayConfig) *TerminalDisplay {
	return &TerminalDisplay{
		config:          config,
		lastLayoutStyle: config.LayoutStyle,
		isFirstRender:   true,
	}
}

func (td *TerminalDisplay) print(s string) {
	_, _ = io.WriteString(td.config.Out, s)
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	td.print(util.EnterAltScreen)
	td.print(util.ClearScreen)
	td.print(util.ClearScrollback)
	td.print(util.ResetScrollRegion)
	td.print(util.HideCursor)
	td.print(util.MoveCursorHome)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	td.print(util.ClearScreen)
	td.print(util.MoveCursorHome)
	td.print(util.ShowCursor)
	td.print(util.ExitAltScreen)
	td.inAlternateScreen = false
}

// ClearScreen clears the alternate screen buffer
func (td *TerminalDisplay) ClearScreen() {
	if td.inAlternateScreen {
		td.print(util.ClearScreen)
		td.print(util.MoveCursorHome)
	}
	td.lastFrame = ""
}

// LayoutStyle is the strategy used for the next frame
func (td *TerminalDisplay) LayoutStyle() int { return td.config.LayoutStyle }

// ToggleLayout switches between the full and minimal dashboards
func (td *TerminalDisplay) ToggleLayout() int {
	if td.config.LayoutStyle == layout.StyleFull {
		td.config.LayoutStyle = layout.StyleMinimal
	} else {
		td.config.LayoutStyle = layout.StyleFull
	}
	return td.config.LayoutStyle
}

func (td *TerminalDisplay) width() int {
	if td.config.Width > 0 {
		return td.config.Width
	}
	return layout.Sizer{}.GetMaxWidth()
}

// Frame renders view to a string without writing it
func (td *TerminalDisplay) Frame(view layout.View) string {
	var buf bytes.Buffer
	layout.GetLayoutStrategy(td.config.LayoutStyle).Render(&buf, view, td.width())
	return buf.String()
}

// Render draws view, skipping frames identical to the last one
func (td *TerminalDisplay) Render(view layout.View) {
	frame := td.Frame(view)

	if td.isFirstRender || td.lastLayoutStyle != td.config.LayoutStyle {
		td.ClearScreen()
		td.lastLayoutStyle = td.config.LayoutStyle
		td.isFirstRender = false
	} else if frame == td.lastFrame {
		return
	} else if td.inAlternateScreen {
		td.print(util.MoveCursorHome)
	}

	td.lastFrame = frame
	if td.inAlternateScreen {
		// each line clears its tail so shorter frames leave no residue
		frame = strings.ReplaceAll(frame, "\n", "\033[K\n") + clearToEnd
	}
	td.print(frame)
}
