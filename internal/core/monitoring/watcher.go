// Package monitoring watches timer definition directories for changes.
package monitoring

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-interval-timer/internal/util"
)

// FileEvent is a change to a timer definition file
type FileEvent struct {
	Path      string
	Operation string
}

// IsRemoval reports whether the file is gone after the event
func (e FileEvent) IsRemoval() bool {
	return strings.Contains(e.Operation, fsnotify.Remove.String()) ||
		strings.Contains(e.Operation, fsnotify.Rename.String())
}

// IsDefinitionFile reports whether path looks like a timer definition
func IsDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

type FileWatcher struct {
	watcher *fsnotify.Watcher
	paths   []string
	events  chan FileEvent
	done    chan struct{}
	once    sync.Once
}

func NewFileWatcher(paths []string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		paths:   paths,
		events:  make(chan FileEvent, 100),
		done:    make(chan struct{}),
	}

	for _, path := range paths {
		if err := fw.addPath(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) addPath(path string) error {
	// Recursively add directories
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() {
			return fw.watcher.Add(p)
		}

		return nil
	})
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.addPath(event.Name); err != nil {
						util.LogWarnf("Failed to watch new directory %s: %v", event.Name, err)
					}
					continue
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if !IsDefinitionFile(event.Name) {
				continue
			}

			select {
			case fw.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())

		case <-fw.done:
			return
		}
	}
}

// Events is closed once the watcher stops
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
	})
	return err
}
