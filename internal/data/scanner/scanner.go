// Package scanner finds timer definition files below a directory.
package scanner

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/penwyp/go-interval-timer/internal/util"
)

// DefaultExtensions are the definition file extensions the parser reads
var DefaultExtensions = []string{".json", ".yaml", ".yml"}

// FileScanner scans files in the specified directory
type FileScanner struct {
	baseDir    string
	extensions []string
}

func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{
		baseDir:    baseDir,
		extensions: DefaultExtensions,
	}
}

// Matches reports whether name is a definition file. Hidden files are
// skipped so editor swap and lock files never reach the parser.
func (s *FileScanner) Matches(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return slices.Contains(s.extensions, strings.ToLower(filepath.Ext(base)))
}

// Scan walks the directory and returns every definition file in lexical
// order. Unreadable entries are skipped.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebugf("Start scanning directory: %s", s.baseDir)

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebugf("Skip file (error): %s - %v", path, err)
			return nil
		}

		if info.IsDir() {
			if path != s.baseDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			dirCount++
			return nil
		}

		totalCount++
		if s.Matches(path) {
			files = append(files, path)
		}

		return nil
	})

	util.LogDebugf("File scan completed: duration %v, scanned %d directories, %d files, found %d definition files",
		time.Since(start), dirCount, totalCount, len(files))

	return files, err
}
