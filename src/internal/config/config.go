// Package config is the configuration of record for a logger instance,
// layered from defaults, a TOML file, VIBELOG_* environment variables and
// command-line arguments.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"vibelog/src/internal/core"
)

// Config carries every recognized logger option.
type Config struct {
	// LogFile is the persistence target. Empty means memory-only.
	LogFile string `toml:"log_file"`

	// AutoSave enables the file sink.
	AutoSave bool `toml:"auto_save"`

	// MaxFileSizeMB is the rotation threshold; zero or below disables
	// rotation rather than failing.
	MaxFileSizeMB float64 `toml:"max_file_size_mb"`

	// CreateDirs creates missing log directories on first write.
	CreateDirs bool `toml:"create_dirs"`

	// KeepLogsInMemory enables the in-memory ring buffer.
	KeepLogsInMemory bool `toml:"keep_logs_in_memory"`

	// MaxMemoryLogs is the ring capacity. Zero or below retains nothing.
	MaxMemoryLogs int `toml:"max_memory_logs"`

	// CorrelationID overrides the generated per-logger identifier.
	CorrelationID string `toml:"correlation_id"`

	// LogLevel is the minimum severity of interest. Informational at this
	// layer; emission is not filtered by it.
	LogLevel string `toml:"log_level"`
}

// Default returns the stock configuration: memory retention on, file
// persistence on once a path is set, 10 MB rotation.
func Default() *Config {
	return &Config{
		AutoSave:         true,
		MaxFileSizeMB:    core.DefaultMaxFileSizeMB,
		CreateDirs:       true,
		KeepLogsInMemory: true,
		MaxMemoryLogs:    core.DefaultMaxMemoryLogs,
		LogLevel:         string(core.LevelInfo),
	}
}

// DefaultFileConfig targets a timestamped file under ./logs/<project>/.
func DefaultFileConfig(project string) *Config {
	cfg := Default()
	name := fmt.Sprintf("vibe_%s.log", time.Now().UTC().Format("20060102_150405"))
	cfg.LogFile = filepath.Join("logs", project, name)
	return cfg
}

// Normalize coerces out-of-range values instead of rejecting them; the
// logging path is non-fatal by default. Non-positive sizes and capacities
// are legal and mean "disabled".
func (c *Config) Normalize() {
	c.LogLevel = string(core.ParseLevel(c.LogLevel))
}

// MinLevel returns the configured severity threshold.
func (c *Config) MinLevel() core.Level {
	return core.ParseLevel(c.LogLevel)
}
