package records

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps records in a SQLite database through the pure-Go
// modernc.org/sqlite driver
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens or creates the database at path. ":memory:" keeps
// everything in process.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create records directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open records database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLiteStore initializes the schema in db and wraps it
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize records schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			timer_id INTEGER NOT NULL,
			timer_name TEXT NOT NULL,
			start_ms INTEGER NOT NULL,
			end_ms INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS records_timer_end ON records (timer_id, end_ms);`,
	)
	return err
}

func (s *SQLiteStore) AppendRecord(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, timer_id, timer_name, start_ms, end_ms)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID.String(),
		r.TimerID,
		r.TimerName,
		r.Start.UnixMilli(),
		r.End.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListRecords(ctx context.Context, f Filter) ([]Record, error) {
	query := `SELECT id, timer_id, timer_name, start_ms, end_ms FROM records WHERE 1 = 1`
	var args []any
	if f.TimerID != 0 {
		query += ` AND timer_id = ?`
		args = append(args, f.TimerID)
	}
	if !f.Since.IsZero() {
		query += ` AND end_ms >= ?`
		args = append(args, f.Since.UnixMilli())
	}
	query += ` ORDER BY end_ms DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			id             string
			r              Record
			startMs, endMs int64
		)
		if err := rows.Scan(&id, &r.TimerID, &r.TimerName, &startMs, &endMs); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid record id %q: %w", id, err)
		}
		r.Start = time.UnixMilli(startMs)
		r.End = time.UnixMilli(endMs)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
