package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"

	ClearScreen       = "\033[2J"
	ClearLine         = "\033[2K"
	ClearScrollback   = "\033[3J"
	ResetScrollRegion = "\033[r"
	MoveCursorHome    = "\033[H"
	HideCursor        = "\033[?25l"
	ShowCursor        = "\033[?25h"
	EnterAltScreen    = "\033[?1049h"
	ExitAltScreen     = "\033[?1049l"
	Bell              = "\a"
)

// GetDisplayWidth calculates the display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TruncateToWidth cuts text to at most width columns, adding an ellipsis when cut
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// CreateProgressBar draws [████░░░░] for percentage (0-100) within width columns
func CreateProgressBar(percentage float64, width int) string {
	barWidth := width - 2
	if barWidth < 1 {
		barWidth = 1
	}
	filled := int((percentage / 100) * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

// Colorize wraps text in an ANSI color
func Colorize(color, text string) string {
	return color + text + ColorReset
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// FormatSectionSeparator creates a separator line of the given width
func FormatSectionSeparator(width int) string {
	if width < 1 {
		width = 1
	}
	return fmt.Sprintf("%s%s%s", ColorCyan, strings.Repeat("─", width), ColorReset)
}

// MoveCursor returns ANSI sequence to move cursor to specific position
func MoveCursor(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}

// CenterText centers text within the given display width
func CenterText(text string, width int) string {
	textWidth := GetDisplayWidth(text)
	if textWidth >= width {
		return TruncateToWidth(text, width)
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-padding-textWidth)
}
