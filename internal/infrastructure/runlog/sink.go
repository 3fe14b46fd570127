// Package runlog persists run log lines to an append-only text file. The
// file accumulates across runs and is never truncated by the migrator.
package runlog

import (
	"fmt"
	"os"
	"sync"
)

// FileSink appends run log lines to a single file, one line per entry.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileSink opens (or creates) the log file for appending.
func NewFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("runlog: opening %s: %w", path, err)
	}
	return &FileSink{file: file}, nil
}

// Append writes one log line followed by a newline.
func (s *FileSink) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("runlog: appending: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
