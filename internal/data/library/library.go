// Package library keeps the timer definitions found in a directory and
// serves them by id.
package library

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/data/parser"
	"github.com/penwyp/go-interval-timer/internal/data/scanner"
	"github.com/penwyp/go-interval-timer/internal/util"
)

var ErrTimerNotFound = errors.New("timer not found")

// Library is safe for concurrent use. LoadTimer may run off the event loop
// while a reload replaces the index.
type Library struct {
	dir     string
	scanner *scanner.FileScanner
	parser  *parser.Parser
	logger  util.LoggerInterface

	mu       sync.RWMutex
	timers   map[int]*model.Timer
	sources  map[int]string
	problems map[string]error
	files    []string
}

func New(dir string, concurrency int) *Library {
	return &Library{
		dir:      dir,
		scanner:  scanner.NewFileScanner(dir),
		parser:   parser.NewParser(concurrency),
		logger:   util.Named("library"),
		timers:   make(map[int]*model.Timer),
		sources:  make(map[int]string),
		problems: make(map[string]error),
	}
}

func (l *Library) Dir() string { return l.dir }

// Reload rescans the directory and rebuilds the index. Files that fail to
// parse are recorded as problems and skipped. When two files define the same
// id the first in lexical order wins.
func (l *Library) Reload() error {
	files, err := l.scanner.Scan()
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", l.dir, err)
	}

	results := make(map[string]parser.ParseResult, len(files))
	for result := range l.parser.ParseFiles(files) {
		results[result.File] = result
	}

	timers := make(map[int]*model.Timer)
	sources := make(map[int]string)
	problems := make(map[string]error)
	for _, file := range files {
		result := results[file]
		if result.Error != nil {
			problems[file] = result.Error
			l.logger.Warnf("Skipping %s: %v", file, result.Error)
			continue
		}
		for _, t := range result.Timers {
			if prev, ok := sources[t.ID]; ok {
				problems[file] = fmt.Errorf("timer %d already defined in %s", t.ID, prev)
				l.logger.Warnf("Duplicate timer %d in %s, keeping %s", t.ID, file, prev)
				continue
			}
			timers[t.ID] = t
			sources[t.ID] = file
		}
	}

	l.mu.Lock()
	for _, old := range l.files {
		if !slices.Contains(files, old) {
			l.parser.Forget(old)
		}
	}
	l.timers = timers
	l.sources = sources
	l.problems = problems
	l.files = files
	l.mu.Unlock()

	l.logger.Infof("Loaded %d timers from %d files in %s", len(timers), len(files), l.dir)
	return nil
}

// LoadTimer returns a copy of the timer with id
func (l *Library) LoadTimer(ctx context.Context, id int) (*model.Timer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	t, ok := l.timers[id]
	l.mu.RUnlock()
	if !ok {
		l.logger.WithContext(ctx).Warnf("Timer %d is not defined in %s", id, l.dir)
		return nil, fmt.Errorf("timer %d: %w", id, ErrTimerNotFound)
	}
	l.logger.WithContext(ctx).Debug("Loaded timer", util.F("name", t.Name))
	return t.Clone(), nil
}

// Timers returns every known timer ordered by id
func (l *Library) Timers() []*model.Timer {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(l.timers))
	out := make([]*model.Timer, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.timers[id])
	}
	return out
}

// Source returns the file that defined id
func (l *Library) Source(id int) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	path, ok := l.sources[id]
	return path, ok
}

// Problems returns the files skipped by the last reload and why
func (l *Library) Problems() map[string]error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.problems)
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.timers)
}
