// Package requestlog writes the append-only request log.
//
// Each successful fetch appends one plain-text line:
//
//	2019-03-01 18:22:05 URL: https://www.hockey-reference.com/leagues/NHL_1990.html, Status: 200
//
// The timestamp is always UTC. The file is never rotated or truncated.
package requestlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TimestampLayout is the layout of the UTC timestamp that starts each line.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultFileName is the default request log file name.
const DefaultFileName = "scrape_records.log"

// Logger appends request lines to an io.Writer.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		l.now = now
	}
}

// New creates a Logger that writes to w.
func New(w io.Writer, opts ...Option) *Logger {
	l := &Logger{
		w:   w,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// File is a Logger backed by a file opened in append mode.
type File struct {
	*Logger
	f *os.File
}

// OpenFile opens (or creates) path in append mode and returns a File logger.
// Parent directories are created as needed.
func OpenFile(path string, opts ...Option) (*File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create request log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open request log: %w", err)
	}

	return &File{Logger: New(f, opts...), f: f}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// Log appends one line for a fetch of url that returned status.
func (l *Logger) Log(url string, status int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := fmt.Fprintf(l.w, "%s URL: %s, Status: %d\n",
		l.now().UTC().Format(TimestampLayout), url, status)
	if err != nil {
		return fmt.Errorf("failed to write request log: %w", err)
	}
	return nil
}
