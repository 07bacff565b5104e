package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) FormatTimers(rows []TimerRow) error {
	w := csv.NewWriter(f.w)

	headers := []string{"ID", "Name", "Loop", "Steps", "Length (s)", "Notify", "Trigger", "Source"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.ID),
			row.Name,
			strconv.Itoa(row.Loop),
			strconv.Itoa(row.Steps),
			fmt.Sprintf("%.0f", row.Length.Seconds()),
			strconv.FormatBool(row.Notify),
			strconv.Itoa(row.TriggerID),
			row.Source,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (f *CSVFormatter) FormatRecords(rows []RecordRow) error {
	w := csv.NewWriter(f.w)

	headers := []string{"ID", "Timer ID", "Timer", "Start", "End", "Duration (s)"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			strconv.Itoa(row.TimerID),
			row.TimerName,
			row.Start.Format(time.RFC3339),
			row.End.Format(time.RFC3339),
			fmt.Sprintf("%.0f", row.Duration.Seconds()),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
