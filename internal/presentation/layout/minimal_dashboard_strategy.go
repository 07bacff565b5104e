package layout

import (
	"fmt"
	"io"
	"strings"
)

// MinimalLayoutStrategy prints one line with every running timer
type MinimalLayoutStrategy struct {
	BaseStrategy
}

func (s *MinimalLayoutStrategy) GetName() string {
	return "Minimal Dashboard"
}

func (s *MinimalLayoutStrategy) Render(w io.Writer, view View, width int) {
	var parts []string
	for _, row := range view.Rows {
		if !row.Running {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s %s %s",
			row.StateIcon(), row.Timer.Name, row.ClockText(), row.StepLabel()))
	}
	if len(parts) == 0 {
		parts = append(parts, "idle")
	}
	if clock := s.ClockText(view); clock != "" {
		parts = append(parts, clock)
	}

	line := "⏱ " + strings.Join(parts, " | ")
	fmt.Fprintln(w, s.GetSizer().Fit(line, max(width, minWidth)))
}
