package layout

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-interval-timer/internal/util"
)

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct{}

// GetSizer returns the shared sizer instance
func (b *BaseStrategy) GetSizer() *Sizer {
	return sharedSizer
}

// ClockText renders the wall clock in the configured hour format
func (b *BaseStrategy) ClockText(view View) string {
	if view.Now.IsZero() {
		return ""
	}
	now := util.GetTimeProvider().In(view.Now)
	if view.TwelveHour {
		return now.Format("3:04:05 PM")
	}
	return now.Format("15:04:05")
}

// ProgressBar creates a progress bar with optional label
func (b *BaseStrategy) ProgressBar(percentage float64, width int, label string) string {
	bar := util.CreateProgressBar(percentage, width)
	if label != "" {
		return fmt.Sprintf("%s %s", bar, label)
	}
	return bar
}

// BoxLine writes content inside the side borders, fitted to width
func (b *BaseStrategy) BoxLine(w io.Writer, content string, width int) {
	fmt.Fprintln(w, "│ "+b.GetSizer().Fit(content, width-4)+" │")
}

// Border writes a rounded horizontal border: top, middle or bottom
func (b *BaseStrategy) Border(w io.Writer, kind string, width int) {
	left, right := "├", "┤"
	switch kind {
	case "top":
		left, right = "╭", "╮"
	case "bottom":
		left, right = "╰", "╯"
	}
	fmt.Fprintln(w, left+strings.Repeat("─", width-2)+right)
}

// TwoColumns joins left and right so right ends at width
func (b *BaseStrategy) TwoColumns(left, right string, width int) string {
	gap := width - util.GetDisplayWidth(left) - util.GetDisplayWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func formatRemaining(d time.Duration) string {
	return util.FormatClock(d) + " left"
}
