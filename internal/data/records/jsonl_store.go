package records

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-interval-timer/internal/util"
)

// JSONLStore appends one JSON document per line to a file
type JSONLStore struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	closed bool
}

var _ Store = (*JSONLStore)(nil)

// NewJSONLStore opens path for appending, creating it and its directory
func NewJSONLStore(path string) (*JSONLStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create records directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file: %w", err)
	}
	return &JSONLStore{path: path, file: file}, nil
}

func (s *JSONLStore) AppendRecord(_ context.Context, r Record) error {
	line, err := sonic.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

// ListRecords reads the whole file. Lines that do not decode are skipped.
func (s *JSONLStore) ListRecords(_ context.Context, f Filter) ([]Record, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open records file: %w", err)
	}
	defer file.Close()

	var all []Record
	scanner := bufio.NewScanner(file)
	lineCount := 0
	for scanner.Scan() {
		lineCount++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var r Record
		if err := sonic.Unmarshal(scanner.Bytes(), &r); err != nil {
			util.LogDebugf("Skip invalid record line %s:%d - %v", s.path, lineCount, err)
			continue
		}
		all = append(all, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}
	return selectRecords(all, f), nil
}

func (s *JSONLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}
