package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/core/timeline"
	"github.com/penwyp/go-interval-timer/internal/data/records"
)

// TimerRow is one timer definition in a listing
type TimerRow struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Loop      int           `json:"loop"`
	Steps     int           `json:"steps"`
	Length    time.Duration `json:"length_ns"`
	Notify    bool          `json:"notify"`
	TriggerID int           `json:"trigger_id,omitempty"`
	Source    string        `json:"source,omitempty"`
}

// RecordRow is one completion record in a listing
type RecordRow struct {
	ID        string        `json:"id"`
	TimerID   int           `json:"timer_id"`
	TimerName string        `json:"timer_name"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Duration  time.Duration `json:"duration_ns"`
}

// Formatter writes timer and record listings
type Formatter interface {
	FormatTimers(rows []TimerRow) error
	FormatRecords(rows []RecordRow) error
}

// New returns the formatter for format: table, json, csv or summary
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "", "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "summary":
		return NewSummaryFormatter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// TimerRows converts timers for display. source may be nil.
func TimerRows(timers []*model.Timer, source func(id int) string) []TimerRow {
	rows := make([]TimerRow, 0, len(timers))
	for _, t := range timers {
		row := TimerRow{
			ID:        t.ID,
			Name:      t.Name,
			Loop:      t.Loop,
			Steps:     t.StepCount(),
			Length:    timeline.TotalTime(t),
			Notify:    t.Notify,
			TriggerID: t.TriggerID,
		}
		if source != nil {
			row.Source = source(t.ID)
		}
		rows = append(rows, row)
	}
	return rows
}

func RecordRows(recs []records.Record) []RecordRow {
	rows := make([]RecordRow, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, RecordRow{
			ID:        r.ID.String(),
			TimerID:   r.TimerID,
			TimerName: r.TimerName,
			Start:     r.Start,
			End:       r.End,
			Duration:  r.Duration(),
		})
	}
	return rows
}
