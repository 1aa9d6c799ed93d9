// Package sink persists log entries to append-only JSON-lines files with
// size-triggered rotation.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vibelog/src/internal/core"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// Options configure a file sink.
type Options struct {
	// Path is the active log file. The parent directory must exist or be
	// creatable when CreateDirs is set.
	Path string

	// MaxSizeMB is the rotation threshold. Zero or below disables rotation.
	MaxSizeMB float64

	// CreateDirs creates missing parent directories on first write.
	CreateDirs bool
}

// FileSink appends entries to a log file, one JSON line per entry. Every
// failure mode degrades instead of propagating: rotation failure falls
// back to the existing file, a write failure is reported on the
// diagnostic logger and swallowed, and an unusable target directory
// disables file writing without touching memory retention.
//
// FileSink is not internally synchronized; the owning Logger's mutex
// covers it. Each line goes out in a single write call, so concurrent
// writers on the same path never tear an individual entry.
type FileSink struct {
	path       string
	maxBytes   int64
	createDirs bool
	disabled   bool
	prepared   bool

	logger   *log.Logger
	reporter *rate.Limiter // throttles repeated write-failure diagnostics
}

// New creates a sink for opts.Path. No file is touched until first append.
func New(opts Options, logger *log.Logger) *FileSink {
	return &FileSink{
		path:       opts.Path,
		maxBytes:   int64(opts.MaxSizeMB * 1024 * 1024),
		createDirs: opts.CreateDirs,
		logger:     logger,
		reporter:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Enabled reports whether the sink still writes to disk.
func (fs *FileSink) Enabled() bool {
	return !fs.disabled
}

// Append serializes the entry and writes it as one line. I/O failures
// never surface to the caller; only a serialization failure returns an
// error, so a bad context value is distinguishable from a bad disk.
func (fs *FileSink) Append(e core.LogEntry) error {
	line, err := e.ToJSON()
	if err != nil {
		return err
	}
	if fs.disabled {
		return nil
	}
	if !fs.prepared {
		if err := fs.prepare(); err != nil {
			fs.disabled = true
			fs.report("File writing disabled", err)
			return nil
		}
		fs.prepared = true
	}

	line = append(line, '\n')
	if fs.maxBytes > 0 {
		if size, err := fs.currentSize(); err == nil && size > 0 && size+int64(len(line)) > fs.maxBytes {
			if err := fs.rotate(); err != nil {
				// Keep appending to the old file rather than lose the entry.
				fs.report("Log rotation failed", err)
			}
		}
	}
	if err := fs.write(line); err != nil {
		fs.report("Log write failed", err)
	}
	return nil
}

// prepare verifies the target directory exists, creating it when allowed.
func (fs *FileSink) prepare() error {
	dir := filepath.Dir(fs.path)
	if dir == "" || dir == "." {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if !fs.createDirs {
			return fmt.Errorf("log directory does not exist: %s", dir)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return nil
}

func (fs *FileSink) currentSize() (int64, error) {
	info, err := os.Stat(fs.path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (fs *FileSink) write(line []byte) error {
	f, err := os.OpenFile(fs.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// rotate moves the active file aside under a timestamped name so a fresh
// file takes over the configured path.
func (fs *FileSink) rotate() error {
	rotated, err := fs.rotatedName(time.Now().UTC())
	if err != nil {
		return err
	}
	if err := os.Rename(fs.path, rotated); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}

// rotatedName derives "name.<timestamp>.log" beside the active file,
// escalating subsecond precision until the name is unused.
func (fs *FileSink) rotatedName(ts time.Time) (string, error) {
	ext := filepath.Ext(fs.path)
	base := strings.TrimSuffix(fs.path, ext)
	if ext == "" {
		ext = ".log"
	}

	stamp := ts.Format("20060102_150405")
	candidate := fmt.Sprintf("%s.%s%s", base, stamp, ext)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	// Collision within the same second
	for precision := 1; precision <= 9; precision++ {
		sub := ts.UnixNano() % 1e9 / pow10(9-precision)
		candidate = fmt.Sprintf("%s.%s_%0*d%s", base, stamp, precision, sub, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique rotated name for %s", fs.path)
}

func pow10(n int) int64 {
	result := int64(1)
	for i := 0; i < n; i++ {
		result *= 10
	}
	return result
}

func (fs *FileSink) report(msg string, err error) {
	if fs.logger == nil || !fs.reporter.Allow() {
		return
	}
	fs.logger.Warn("msg", msg,
		"component", "file_sink",
		"path", fs.path,
		"error", err)
}
