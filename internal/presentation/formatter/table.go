package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-interval-timer/internal/util"
)

const timeLayout = "2006-01-02 15:04"

type TableFormatter struct {
	w io.Writer
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w}
}

func (f *TableFormatter) FormatTimers(rows []TimerRow) error {
	headers := []string{"ID", "Name", "Loop", "Steps", "Length", "Notify", "Trigger"}
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		notify := ""
		if row.Notify {
			notify = "yes"
		}
		trigger := ""
		if row.TriggerID != 0 {
			trigger = strconv.Itoa(row.TriggerID)
		}
		data = append(data, []string{
			strconv.Itoa(row.ID),
			row.Name,
			strconv.Itoa(row.Loop),
			strconv.Itoa(row.Steps),
			util.FormatClock(row.Length),
			notify,
			trigger,
		})
	}
	f.render(headers, data, nil)
	return nil
}

func (f *TableFormatter) FormatRecords(rows []RecordRow) error {
	headers := []string{"Timer", "Name", "Start", "End", "Duration"}
	tp := util.GetTimeProvider()
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, []string{
			strconv.Itoa(row.TimerID),
			row.TimerName,
			tp.Format(row.Start, timeLayout),
			tp.Format(row.End, timeLayout),
			util.FormatClock(row.Duration),
		})
	}
	var total []string
	if len(rows) > 0 {
		var sum time.Duration
		for _, row := range rows {
			sum += row.Duration
		}
		total = []string{"Total", fmt.Sprintf("%d runs", len(rows)), "", "", util.FormatClock(sum)}
	}
	f.render(headers, data, total)
	return nil
}

func (f *TableFormatter) render(headers []string, data [][]string, total []string) {
	widths := calculateColumnWidths(headers, data, total)

	f.printBorder(widths, "top")
	f.printRow(headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range data {
		f.printRow(row, widths)
	}
	if total != nil {
		f.printBorder(widths, "middle")
		f.printRow(total, widths)
	}
	f.printBorder(widths, "bottom")
}

// calculateColumnWidths sizes every column to its widest cell by display width
func calculateColumnWidths(headers []string, data [][]string, total []string) []int {
	widths := make([]int, len(headers))
	measure := func(values []string) {
		for i, value := range values {
			widths[i] = max(widths[i], util.GetDisplayWidth(value))
		}
	}
	measure(headers)
	for _, row := range data {
		measure(row)
	}
	measure(total)

	// Apply minimum widths for readability
	for i := range widths {
		widths[i] = max(widths[i], 4)
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(f.w, b.String())
}

// printRow left-aligns the second column and right-aligns the rest
func (f *TableFormatter) printRow(values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		pad := strings.Repeat(" ", widths[i]-util.GetDisplayWidth(value))
		if i == 1 {
			b.WriteString(" " + value + pad + " │")
		} else {
			b.WriteString(" " + pad + value + " │")
		}
	}
	fmt.Fprintln(f.w, b.String())
}
