// Package logger coordinates the log-entry pipeline: it owns the
// correlation identifier, the in-memory ring buffer and the file sink,
// and funnels every emission through one internal processing path so the
// two stores can never observe different entry sequences.
package logger

import (
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"vibelog/src/internal/buffer"
	"vibelog/src/internal/caller"
	"vibelog/src/internal/config"
	"vibelog/src/internal/core"
	"vibelog/src/internal/loader"
	"vibelog/src/internal/sink"

	"github.com/google/uuid"
	"github.com/lixenwraith/log"
)

// Logger is the public coordinator of the pipeline. A Logger is
// operational from construction for its whole lifetime; there is no
// shutdown protocol. Emission never fails the caller: file trouble is
// reported on the diagnostic logger and otherwise swallowed.
type Logger struct {
	cfg           *config.Config
	correlationID string
	diag          *log.Logger

	// mu is the single concurrency discipline for the instance. It covers
	// entry construction plus both appends as one critical section, which
	// keeps per-instance timestamps monotone and memory and file in step.
	mu            sync.Mutex
	ring          *buffer.Ring
	sink          *sink.FileSink
	lastTimestamp time.Time
}

// Option adjusts Logger construction.
type Option func(*Logger)

// WithDiagnostics replaces the default stderr diagnostic logger, e.g. to
// silence it in tests or route it into an application's own logging.
func WithDiagnostics(diag *log.Logger) Option {
	return func(l *Logger) { l.diag = diag }
}

// New builds an operational Logger from cfg. A nil cfg means defaults; an
// empty correlation id gets a freshly generated one, unique across
// concurrently constructed instances.
func New(cfg *config.Config, opts ...Option) *Logger {
	if cfg == nil {
		cfg = config.Default()
	}
	l := &Logger{cfg: cfg}
	for _, opt := range opts {
		opt(l)
	}
	if l.diag == nil {
		l.diag = newStderrDiagnostics()
	}

	l.correlationID = strings.TrimSpace(cfg.CorrelationID)
	if l.correlationID == "" {
		l.correlationID = uuid.NewString()
	}

	capacity := 0
	if cfg.KeepLogsInMemory {
		capacity = cfg.MaxMemoryLogs
	}
	l.ring = buffer.New(capacity)

	if cfg.AutoSave && cfg.LogFile != "" {
		l.sink = sink.New(sink.Options{
			Path:       cfg.LogFile,
			MaxSizeMB:  cfg.MaxFileSizeMB,
			CreateDirs: cfg.CreateDirs,
		}, l.diag)
	}
	return l
}

// NewFileLogger builds a Logger persisting under ./logs/<project>/ with a
// timestamped file name.
func NewFileLogger(project string, opts ...Option) *Logger {
	return New(config.DefaultFileConfig(project), opts...)
}

// NewFromEnv builds a Logger configured from VIBELOG_* environment
// variables, falling back to defaults when the environment is unreadable.
func NewFromEnv(opts ...Option) *Logger {
	cfg, err := config.FromEnv()
	if err != nil {
		cfg = config.Default()
	}
	return New(cfg, opts...)
}

// newStderrDiagnostics builds the default side channel. Diagnostics never
// touch the filesystem; a broken disk is exactly when they matter most.
func newStderrDiagnostics() *log.Logger {
	diag := log.NewLogger()
	if err := diag.ApplyConfigString(
		"disable_file=true",
		"enable_stdout=true",
		"stdout_target=stderr",
	); err != nil {
		return nil
	}
	if err := diag.Start(); err != nil {
		return nil
	}
	return diag
}

// CorrelationID returns the identifier attached to this instance's
// entries unless overridden per call.
func (l *Logger) CorrelationID() string {
	return l.correlationID
}

// Config returns the configuration of record.
func (l *Logger) Config() *config.Config {
	return l.cfg
}

// FileEnabled reports whether entries are currently persisted to disk.
func (l *Logger) FileEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sink != nil && l.sink.Enabled()
}

// Debug emits a DEBUG entry.
func (l *Logger) Debug(operation, message string, opts ...EmitOption) core.LogEntry {
	return l.log(core.LevelDebug, operation, message, "", opts)
}

// Info emits an INFO entry.
func (l *Logger) Info(operation, message string, opts ...EmitOption) core.LogEntry {
	return l.log(core.LevelInfo, operation, message, "", opts)
}

// Warning emits a WARNING entry.
func (l *Logger) Warning(operation, message string, opts ...EmitOption) core.LogEntry {
	return l.log(core.LevelWarning, operation, message, "", opts)
}

// Error emits an ERROR entry.
func (l *Logger) Error(operation, message string, opts ...EmitOption) core.LogEntry {
	return l.log(core.LevelError, operation, message, "", opts)
}

// Critical emits a CRITICAL entry.
func (l *Logger) Critical(operation, message string, opts ...EmitOption) core.LogEntry {
	return l.log(core.LevelCritical, operation, message, "", opts)
}

// LogException records err as an ERROR entry carrying its type name,
// message and the current stack trace.
func (l *Logger) LogException(operation string, err error, opts ...EmitOption) core.LogEntry {
	message := "<nil>"
	if err != nil {
		message = fmt.Sprintf("%T: %v", err, err)
	}
	return l.log(core.LevelError, operation, message, string(debug.Stack()), opts)
}

// log is the single emission path. Construction and both appends happen
// under the instance mutex so the ring and the file always agree.
func (l *Logger) log(level core.Level, operation, message, stackTrace string, opts []EmitOption) core.LogEntry {
	var em emission
	for _, opt := range opts {
		opt(&em)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.buildEntryLocked(level, operation, message, stackTrace, em)
	l.processEntryLocked(entry)
	return entry
}

// buildEntryLocked assembles a fully populated entry. The timestamp is
// assigned under the lock and clamped so entries read back in append
// order never go backwards, even when the wall clock does.
func (l *Logger) buildEntryLocked(level core.Level, operation, message, stackTrace string, em emission) core.LogEntry {
	now := time.Now().UTC()
	if now.Before(l.lastTimestamp) {
		now = l.lastTimestamp
	}
	l.lastTimestamp = now

	cid := strings.TrimSpace(em.correlationID)
	if cid == "" {
		cid = l.correlationID
	}
	ctx := em.context
	if ctx == nil {
		ctx = map[string]any{}
	}

	return core.LogEntry{
		Timestamp:     now.Format(time.RFC3339Nano),
		Level:         level,
		CorrelationID: cid,
		Operation:     operation,
		Message:       message,
		Context:       ctx,
		Environment:   core.CaptureEnvironment(),
		Source:        caller.Resolve(),
		StackTrace:    stackTrace,
		HumanNote:     em.humanNote,
		AITodo:        em.aiTodo,
	}
}

// processEntryLocked is the one path every built entry takes, plain or
// exception-derived, user call or adapter: memory first, then file, each
// subject to its own policy. A sink serialization failure is reported and
// the entry still lives in memory.
func (l *Logger) processEntryLocked(entry core.LogEntry) {
	l.ring.Append(entry)
	if l.sink != nil {
		if err := l.sink.Append(entry); err != nil && l.diag != nil {
			l.diag.Warn("msg", "Failed to serialize log entry",
				"component", "logger",
				"operation", entry.Operation,
				"error", err)
		}
	}
}

// Logs returns a copy of the in-memory entries in append order.
func (l *Logger) Logs() []core.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ring.Snapshot()
}

// ClearLogs empties the in-memory buffer. Persisted files are untouched.
func (l *Logger) ClearLogs() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ring.Clear()
}

// LogsForAI returns the buffered entries serialized as a JSON array,
// optionally keeping only entries whose operation contains filter. It is
// a pure read.
func (l *Logger) LogsForAI(filter string) (string, error) {
	l.mu.Lock()
	entries := l.ring.Snapshot()
	l.mu.Unlock()

	if filter != "" {
		kept := entries[:0]
		for _, e := range entries {
			if strings.Contains(e.Operation, filter) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize logs: %w", err)
	}
	return string(b), nil
}

// LoadLogsFromFile replays a persisted log file into the in-memory
// buffer, honoring the ring's capacity and eviction rules. Corrupted
// lines are counted and reported through the diagnostic logger; they
// never abort the load.
func (l *Logger) LoadLogsFromFile(path string) error {
	entries, _, err := loader.New(l.diag).Load(path)

	// A read failure mid-file still yields the entries recovered before
	// it; keep them rather than throwing the partial recovery away.
	if len(entries) > 0 {
		l.mu.Lock()
		l.ring.AppendAll(entries)
		l.mu.Unlock()
	}
	return err
}

// SaveAllLogs writes the current in-memory entries to path, one JSON line
// per entry, regardless of the auto_save setting.
func (l *Logger) SaveAllLogs(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := sink.New(sink.Options{
		Path:       path,
		CreateDirs: l.cfg.CreateDirs,
	}, l.diag)
	for _, e := range l.ring.Snapshot() {
		if err := s.Append(e); err != nil {
			return err
		}
	}
	if !s.Enabled() {
		return fmt.Errorf("failed to save logs to %s", path)
	}
	return nil
}
