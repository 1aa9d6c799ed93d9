// Package loader reads persisted JSON-lines log files back into memory,
// recovering as many entries as possible from partially corrupted files.
package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"vibelog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Generous ceiling for one persisted line. Entries with large contexts
// still fit; anything bigger is counted as a corrupted line and skipped,
// and the load continues with the next line.
const maxLineBytes = 10 * 1024 * 1024

// Loader reconstructs log entries from newline-delimited JSON files.
type Loader struct {
	logger *log.Logger
}

// New creates a loader reporting recovery diagnostics to logger.
func New(logger *log.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load parses path line by line and returns the entries it could
// reconstruct in file order, plus the number of corrupted lines skipped.
// A malformed line never aborts the load; only failing to open the file
// returns an error, and a read error mid-file still returns everything
// recovered before it.
func (l *Loader) Load(path string) ([]core.LogEntry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	var (
		entries []core.LogEntry
		skipped int
	)

	reader := bufio.NewReaderSize(f, 64*1024)
	for {
		line, tooLong, err := readLine(reader)
		if err != nil && err != io.EOF {
			return entries, skipped, fmt.Errorf("failed to read log file: %w", err)
		}
		if tooLong {
			skipped++
		} else if trimmed := strings.TrimSpace(line); trimmed != "" {
			if entry, ok := decodeLine(trimmed); ok {
				entries = append(entries, entry)
			} else {
				skipped++
			}
		}
		if err == io.EOF {
			break
		}
	}

	l.summarize(path, len(entries), skipped)
	return entries, skipped, nil
}

// readLine reads up to the next newline. A line longer than maxLineBytes
// is consumed to its end but reported as too long with no content, so
// one oversized line costs bounded memory and a single skip.
func readLine(r *bufio.Reader) (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return string(buf), tooLong, err
	}
}

// decodeLine reconstructs one entry. A line is corrupted when it is not a
// JSON object or lacks the identity fields timestamp, level and
// correlation_id. Everything else is recoverable: operation, message and
// context default to empty, a missing or malformed environment is
// replaced with the current process snapshot, and optional fields are
// preserved verbatim when present.
func decodeLine(line string) (core.LogEntry, bool) {
	// Environment is decoded separately so a malformed shape recovers
	// instead of corrupting the whole line.
	var raw struct {
		core.LogEntry
		Environment json.RawMessage `json:"environment"`
	}
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return core.LogEntry{}, false
	}

	entry := raw.LogEntry
	if entry.Timestamp == "" || entry.Level == "" || entry.CorrelationID == "" {
		return core.LogEntry{}, false
	}
	if !entry.Level.Valid() {
		entry.Level = core.ParseLevel(string(entry.Level))
	}

	if len(raw.Environment) > 0 {
		var env core.EnvironmentInfo
		if err := json.Unmarshal(raw.Environment, &env); err == nil {
			entry.Environment = env
		}
	}
	if entry.Environment.IsZero() {
		entry.Environment = core.CaptureEnvironment()
	}

	if entry.Context == nil {
		entry.Context = map[string]any{}
	}
	return entry, true
}

func (l *Loader) summarize(path string, loaded, skipped int) {
	if l.logger == nil {
		return
	}
	if skipped > 0 {
		l.logger.Warn("msg", "Recovered log file with corrupted lines",
			"component", "loader",
			"path", path,
			"loaded", loaded,
			"skipped", skipped)
		return
	}
	l.logger.Info("msg", "Loaded log file",
		"component", "loader",
		"path", path,
		"loaded", loaded)
}
