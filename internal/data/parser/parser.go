// Package parser reads timer definition files. A file holds one timer or a
// list of timers, written as JSON or YAML.
package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/util"
)

// Format is the encoding of a definition file
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the format from the file extension. Anything that is not
// YAML is read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

type cachedFile struct {
	fingerprint string
	timers      []*model.Timer
}

// Parser parses timer definition files and remembers the result until the
// file content changes
type Parser struct {
	concurrency int
	mu          sync.Mutex
	cache       map[string]cachedFile
}

// ParseResult represents the result of parsing a single file.
type ParseResult struct {
	File   string
	Timers []*model.Timer
	Error  error
}

func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		cache:       make(map[string]cachedFile),
	}
}

// ParseFile parses the definition file at path. Every timer is validated;
// one invalid timer fails the whole file.
func (p *Parser) ParseFile(path string) ([]*model.Timer, error) {
	fingerprint, err := util.CalculateFileFingerprint(path)
	if err != nil {
		util.LogDebugf("Failed to open file: %s - %v", path, err)
		return nil, err
	}

	p.mu.Lock()
	if cached, ok := p.cache[path]; ok && cached.fingerprint == fingerprint {
		p.mu.Unlock()
		return cached.timers, nil
	}
	p.mu.Unlock()

	util.LogDebugf("Start parsing file: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	timers, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	p.mu.Lock()
	p.cache[path] = cachedFile{fingerprint: fingerprint, timers: timers}
	p.mu.Unlock()

	return timers, nil
}

// Forget drops the cached result for path
func (p *Parser) Forget(path string) {
	p.mu.Lock()
	delete(p.cache, path)
	p.mu.Unlock()
}

// ParseFiles parses multiple files concurrently and returns a channel of ParseResult.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebugf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency)

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fileStart := time.Now()
			timers, err := p.ParseFile(f)
			if err != nil {
				util.LogDebugf("File parsing failed: %s, duration %v - %v", f, time.Since(fileStart), err)
			}

			results <- ParseResult{
				File:   f,
				Timers: timers,
				Error:  err,
			}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebugf("Concurrent parsing finished, total duration: %v", time.Since(start))
	}()

	return results
}

// Parse decodes a definition document. Empty input yields no timers.
func Parse(data []byte, format Format) ([]*model.Timer, error) {
	var (
		docs []timerDoc
		err  error
	)
	switch format {
	case FormatYAML:
		docs, err = decodeYAML(data)
	default:
		docs, err = decodeJSON(data)
	}
	if err != nil {
		return nil, err
	}

	timers := make([]*model.Timer, 0, len(docs))
	for i, doc := range docs {
		t, err := doc.toModel()
		if err != nil {
			return nil, fmt.Errorf("timer %d (entry %d): %w", doc.ID, i, err)
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		timers = append(timers, t)
	}
	return timers, nil
}

func decodeJSON(data []byte) ([]timerDoc, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var docs []timerDoc
		if err := sonic.Unmarshal(trimmed, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}
	var doc timerDoc
	if err := sonic.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return []timerDoc{doc}, nil
}

func decodeYAML(data []byte) ([]timerDoc, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}
	node := root.Content[0]
	if node.Kind == yaml.SequenceNode {
		var docs []timerDoc
		if err := node.Decode(&docs); err != nil {
			return nil, err
		}
		return docs, nil
	}
	var doc timerDoc
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	return []timerDoc{doc}, nil
}
