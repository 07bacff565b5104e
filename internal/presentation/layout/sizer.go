package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/penwyp/go-interval-timer/internal/util"
)

const (
	defaultWidth = 74
	minWidth     = 40
	maxWidth     = 100
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

type Sizer struct{}

// displayWidth calculates the actual display width of a string containing emojis and Unicode characters
func (i Sizer) displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString pads a string to a specific display width, handling emojis correctly
func (i Sizer) PadString(s string, width int, leftAlign bool) string {
	actualWidth := i.displayWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// Fit truncates or pads s to exactly width columns
func (i Sizer) Fit(s string, width int) string {
	if i.displayWidth(s) > width {
		s = util.TruncateToWidth(s, width)
	}
	return i.PadString(s, width, true)
}

// GetMaxWidth sizes the dashboard to the terminal on stdout, falling back to
// a fixed width when stdout is not a terminal
func (i Sizer) GetMaxWidth() int {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return defaultWidth
	}
	return ClampWidth(termWidth - 2)
}

// ClampWidth keeps a dashboard width within readable bounds
func ClampWidth(width int) int {
	return min(max(width, minWidth), maxWidth)
}
