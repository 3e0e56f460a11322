// Package eventlog is the append-only activity log: one JSON object per line.
package eventlog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchgate/internal/domain"
	"github.com/kailas-cloud/searchgate/internal/domain/activity"
	"github.com/kailas-cloud/searchgate/internal/metrics"
)

// Recorder appends activity entries. Failures never reach the caller.
type Recorder interface {
	Record(action activity.Action, message string)
}

// Options tunes a FileSink.
type Options struct {
	// SyncWrites fsyncs after every line.
	SyncWrites bool
	Logger     *zap.Logger
	// Now overrides the clock; nil uses time.Now.
	Now func() time.Time
}

// FileSink appends entries to a JSON-lines file opened with O_APPEND.
// Safe for concurrent use.
type FileSink struct {
	path   string
	opts   Options
	logger *zap.Logger

	mu     sync.Mutex
	file   *os.File
	closed bool
}

// Open opens (creating if needed) the log file at path.
func Open(path string, opts Options) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create event log dir: %w", err)
		}
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open event log %s: %w", path, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &FileSink{path: path, opts: opts, logger: logger, file: f}, nil
}

// Path returns the file path of the sink.
func (s *FileSink) Path() string { return s.path }

// Record stamps and appends an entry, swallowing failures.
func (s *FileSink) Record(action activity.Action, message string) {
	if err := s.Append(activity.NewEntry(action, message, s.opts.Now())); err != nil {
		metrics.EventLogWriteErrorsTotal.Inc()
		s.logger.Warn("event log append failed",
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return
	}
	metrics.ActivityEntriesTotal.WithLabelValues(string(action)).Inc()
}

// Append writes one entry as a single line. Errors wrap domain.ErrLogWrite.
func (s *FileSink) Append(e activity.Entry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w: %w", domain.ErrLogWrite, err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("sink closed: %w", domain.ErrLogWrite)
	}
	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("write entry: %w: %w", domain.ErrLogWrite, err)
	}
	if s.opts.SyncWrites {
		if err := s.file.Sync(); err != nil {
			return fmt.Errorf("sync: %w: %w", domain.ErrLogWrite, err)
		}
	}
	return nil
}

// Check reports whether the sink can still be written to.
func (s *FileSink) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("sink closed: %w", domain.ErrLogWrite)
	}
	if _, err := s.file.Stat(); err != nil {
		return fmt.Errorf("stat: %w: %w", domain.ErrLogWrite, err)
	}
	return nil
}

// Close flushes and closes the file. Later appends fail.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return errors.Join(s.file.Sync(), s.file.Close())
}

// ReadAll loads every entry from a JSON-lines file in order.
// A missing file yields no entries.
func ReadAll(path string) ([]activity.Entry, error) {
	f, err := os.Open(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	var entries []activity.Entry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e activity.Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("line %d: %w", n, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return entries, fmt.Errorf("scan event log: %w", err)
	}
	return entries, nil
}

// Discard is a Recorder that drops every entry.
type Discard struct{}

// Record implements Recorder.
func (Discard) Record(activity.Action, string) {}
