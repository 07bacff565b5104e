package records

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite runs the same contract against every backend
type StoreTestSuite struct {
	suite.Suite
	open  func(t *testing.T) Store
	store Store
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(*testing.T) Store { return NewMemoryStore() }})
}

func TestJSONLStoreSuite(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(t *testing.T) Store {
		store, err := NewJSONLStore(filepath.Join(t.TempDir(), "nested", "records.jsonl"))
		if err != nil {
			t.Fatalf("NewJSONLStore failed: %v", err)
		}
		return store
	}})
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(t *testing.T) Store {
		store, err := OpenSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("OpenSQLiteStore failed: %v", err)
		}
		return store
	}})
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.open(s.T())
}

func (s *StoreTestSuite) TearDownTest() {
	_ = s.store.Close()
}

func at(minute int) time.Time {
	return time.Date(2026, 5, 1, 9, minute, 0, 0, time.UTC)
}

func (s *StoreTestSuite) seed() []Record {
	recs := []Record{
		NewRecord(1, "Tabata", at(0), at(4)),
		NewRecord(2, "Pomodoro", at(5), at(30)),
		NewRecord(1, "Tabata", at(31), at(35)),
	}
	for _, r := range recs {
		s.Require().NoError(s.store.AppendRecord(s.ctx, r))
	}
	return recs
}

func (s *StoreTestSuite) TestEmpty() {
	got, err := s.store.ListRecords(s.ctx, Filter{})
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *StoreTestSuite) TestAppendAndList() {
	recs := s.seed()

	got, err := s.store.ListRecords(s.ctx, Filter{})
	s.Require().NoError(err)
	s.Require().Len(got, 3)

	s.Equal(recs[2].ID, got[0].ID, "newest first")
	s.Equal(recs[1].ID, got[1].ID)
	s.Equal(recs[0].ID, got[2].ID)

	s.Equal("Pomodoro", got[1].TimerName)
	s.Equal(2, got[1].TimerID)
	s.True(got[1].Start.Equal(at(5)))
	s.True(got[1].End.Equal(at(30)))
	s.Equal(25*time.Minute, got[1].Duration())
}

func (s *StoreTestSuite) TestFilter() {
	recs := s.seed()

	tests := []struct {
		name   string
		filter Filter
		want   []Record
	}{
		{"by timer", Filter{TimerID: 1}, []Record{recs[2], recs[0]}},
		{"since", Filter{Since: at(10)}, []Record{recs[2], recs[1]}},
		{"limit", Filter{Limit: 1}, []Record{recs[2]}},
		{"combined", Filter{TimerID: 1, Since: at(1), Limit: 5}, []Record{recs[2], recs[0]}},
		{"no match", Filter{TimerID: 99}, nil},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.store.ListRecords(s.ctx, tt.filter)
			s.Require().NoError(err)
			s.Require().Len(got, len(tt.want))
			for i := range tt.want {
				s.Equal(tt.want[i].ID, got[i].ID)
			}
		})
	}
}

func TestMemoryStore_Closed(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Close())
	assert.ErrorIs(t, store.AppendRecord(context.Background(), NewRecord(1, "x", at(0), at(1))), ErrClosed)
	_, err := store.ListRecords(context.Background(), Filter{})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestJSONLStore_SkipsInvalidLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	store, err := NewJSONLStore(path)
	assert.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	assert.NoError(t, store.AppendRecord(ctx, NewRecord(1, "ok", at(0), at(1))))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	assert.NoError(t, err)
	_, _ = f.WriteString("{not json\n\n")
	_ = f.Close()

	assert.NoError(t, store.AppendRecord(ctx, NewRecord(2, "ok", at(2), at(3))))

	got, err := store.ListRecords(ctx, Filter{})
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	assert.NoError(t, store.Close())
	assert.ErrorIs(t, store.AppendRecord(ctx, NewRecord(3, "late", at(4), at(5))), ErrClosed)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		path    string
		wantErr bool
	}{
		{BackendMemory, "", false},
		{BackendJSONL, filepath.Join(dir, "r.jsonl"), false},
		{BackendSQLite, filepath.Join(dir, "db", "r.db"), false},
		{"redis", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			store, err := Open(tt.backend, tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownBackend)
				return
			}
			assert.NoError(t, err)
			assert.NoError(t, store.Close())
		})
	}
}
