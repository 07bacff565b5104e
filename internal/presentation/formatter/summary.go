package formatter

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/penwyp/go-interval-timer/internal/util"
)

// SummaryFormatter prints totals instead of one line per entry
type SummaryFormatter struct {
	w io.Writer
}

func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

func (f *SummaryFormatter) FormatTimers(rows []TimerRow) error {
	var total time.Duration
	var longest TimerRow
	notify := 0
	for _, row := range rows {
		total += row.Length
		if row.Length > longest.Length {
			longest = row
		}
		if row.Notify {
			notify++
		}
	}

	fmt.Fprintln(f.w, util.FormatHeaderTitle("Timer Summary"))
	fmt.Fprintf(f.w, "Timers:          %d\n", len(rows))
	fmt.Fprintf(f.w, "With indicator:  %d\n", notify)
	fmt.Fprintf(f.w, "Total length:    %s\n", util.FormatDuration(total))
	if longest.Name != "" {
		fmt.Fprintf(f.w, "Longest:         %s (%s)\n", longest.Name, util.FormatDuration(longest.Length))
	}
	return nil
}

type timerTotals struct {
	id    int
	name  string
	runs  int
	total time.Duration
	last  time.Time
}

func (f *SummaryFormatter) FormatRecords(rows []RecordRow) error {
	byTimer := make(map[int]*timerTotals)
	var total time.Duration
	for _, row := range rows {
		t, ok := byTimer[row.TimerID]
		if !ok {
			t = &timerTotals{id: row.TimerID, name: row.TimerName}
			byTimer[row.TimerID] = t
		}
		t.runs++
		t.total += row.Duration
		if row.End.After(t.last) {
			t.last = row.End
		}
		total += row.Duration
	}

	stats := make([]*timerTotals, 0, len(byTimer))
	for _, t := range byTimer {
		stats = append(stats, t)
	}
	slices.SortFunc(stats, func(a, b *timerTotals) int {
		return cmp.Or(cmp.Compare(b.total, a.total), cmp.Compare(a.id, b.id))
	})

	fmt.Fprintln(f.w, util.FormatHeaderTitle("Run Summary"))
	fmt.Fprintf(f.w, "Runs:        %d\n", len(rows))
	fmt.Fprintf(f.w, "Total time:  %s\n", util.FormatDuration(total))
	if len(stats) == 0 {
		return nil
	}
	fmt.Fprintln(f.w)
	tp := util.GetTimeProvider()
	for _, t := range stats {
		fmt.Fprintf(f.w, "  %-24s %3d runs  %-8s last %s\n",
			util.TruncateToWidth(t.name, 24), t.runs, util.FormatDuration(t.total), tp.Format(t.last, timeLayout))
	}
	return nil
}
