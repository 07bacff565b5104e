package layout

import (
	"fmt"
	"io"
	"strings"
)

const labelWidth = 22

// FullLayoutStrategy implements the full dashboard layout
type FullLayoutStrategy struct {
	BaseStrategy
}

func (s *FullLayoutStrategy) GetName() string {
	return "Full Dashboard"
}

func (s *FullLayoutStrategy) Render(w io.Writer, view View, width int) {
	width = ClampWidth(width)
	inner := width - 4

	s.Border(w, "top", width)
	s.header(w, view, inner)
	s.Border(w, "middle", width)

	if len(view.Help) > 0 {
		for _, line := range view.Help {
			s.BoxLine(w, line, width)
		}
	} else {
		s.timers(w, view, width)
	}

	if len(view.Effects) > 0 {
		s.Border(w, "middle", width)
		for _, effect := range view.Effects {
			s.BoxLine(w, effect, width)
		}
	}

	s.Border(w, "middle", width)
	s.footer(w, view, inner)
	s.Border(w, "bottom", width)
}

func (s *FullLayoutStrategy) header(w io.Writer, view View, inner int) {
	title := fmt.Sprintf("⏱  Interval Timer · %d running · %s", view.Running(), view.Mode)
	s.BoxLine(w, s.TwoColumns(title, s.ClockText(view), inner), inner+4)
}

func (s *FullLayoutStrategy) timers(w io.Writer, view View, width int) {
	if len(view.Rows) == 0 {
		s.BoxLine(w, "No timers defined", width)
		return
	}
	inner := width - 4
	for _, row := range view.Rows {
		marker := " "
		if row.Selected {
			marker = "›"
		}
		name := fmt.Sprintf("%s %s %s", marker, row.StateIcon(), row.Timer.Name)
		clock := fmt.Sprintf("loop %s  %s", row.LoopText(), row.ClockText())
		s.BoxLine(w, s.TwoColumns(name, clock, inner), width)

		label := s.GetSizer().Fit(row.StepLabel(), labelWidth)
		right := fmt.Sprintf("%3.0f%%  %s", row.Percent(), formatRemaining(row.Remaining()))
		barWidth := max(inner-4-labelWidth-1-len([]rune(right))-1, 10)
		s.BoxLine(w, "    "+label+" "+s.ProgressBar(row.Percent(), barWidth, right), width)
	}
}

func (s *FullLayoutStrategy) footer(w io.Writer, view View, inner int) {
	if view.Confirm != "" {
		s.BoxLine(w, view.Confirm+" (y/n)", inner+4)
		return
	}
	status := view.Status
	if view.SortField != "" {
		status = s.TwoColumns(status, "sort: "+view.SortField, inner)
	}
	s.BoxLine(w, status, inner+4)
	s.BoxLine(w, strings.Join([]string{"space start/pause", "n/p step", "r reset", "h help", "q quit"}, " · "), inner+4)
}
