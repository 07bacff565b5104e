// Package records stores completion records: one entry per timer run that
// ended normally or was stopped on its last step.
package records

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClosed         = errors.New("record store is closed")
	ErrUnknownBackend = errors.New("unknown record store backend")
)

// Record is a single completed run
type Record struct {
	ID        uuid.UUID `json:"id"`
	TimerID   int       `json:"timer_id"`
	TimerName string    `json:"timer_name"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// NewRecord creates a record with a fresh run id
func NewRecord(timerID int, timerName string, start, end time.Time) Record {
	return Record{
		ID:        uuid.New(),
		TimerID:   timerID,
		TimerName: timerName,
		Start:     start,
		End:       end,
	}
}

// Duration is the wall-clock length of the run
func (r Record) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Filter narrows ListRecords. Zero values match everything.
type Filter struct {
	TimerID int
	Since   time.Time
	Limit   int
}

func (f Filter) match(r Record) bool {
	if f.TimerID != 0 && r.TimerID != f.TimerID {
		return false
	}
	if !f.Since.IsZero() && r.End.Before(f.Since) {
		return false
	}
	return true
}

// Store persists records. Implementations are safe for concurrent use.
type Store interface {
	AppendRecord(ctx context.Context, r Record) error
	// ListRecords returns matching records, most recent end time first
	ListRecords(ctx context.Context, f Filter) ([]Record, error)
	Close() error
}
