package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibelog/src/internal/core"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Empty(t, cfg.LogFile)
	assert.True(t, cfg.AutoSave)
	assert.Equal(t, float64(10), cfg.MaxFileSizeMB)
	assert.True(t, cfg.CreateDirs)
	assert.True(t, cfg.KeepLogsInMemory)
	assert.Equal(t, 1000, cfg.MaxMemoryLogs)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("myproject")

	assert.Contains(t, cfg.LogFile, "myproject")
	assert.Contains(t, filepath.Base(cfg.LogFile), "vibe_")
	assert.Equal(t, ".log", filepath.Ext(cfg.LogFile))
	assert.True(t, cfg.AutoSave)
}

func TestNormalize(t *testing.T) {
	cfg := &Config{LogLevel: "warn"}
	cfg.Normalize()
	assert.Equal(t, "WARNING", cfg.LogLevel)

	cfg = &Config{LogLevel: "nonsense"}
	cfg.Normalize()
	assert.Equal(t, "INFO", cfg.LogLevel)

	// Out-of-range numerics are legal, not errors
	cfg = &Config{MaxMemoryLogs: -5, MaxFileSizeMB: -1}
	cfg.Normalize()
	assert.Equal(t, -5, cfg.MaxMemoryLogs)
	assert.Equal(t, float64(-1), cfg.MaxFileSizeMB)
}

func TestMinLevel(t *testing.T) {
	cfg := &Config{LogLevel: "error"}
	assert.Equal(t, core.LevelError, cfg.MinLevel())
}

func TestFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.AutoSave)
		assert.Equal(t, float64(10), cfg.MaxFileSizeMB)
		assert.Equal(t, "INFO", cfg.LogLevel)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("VIBELOG_LOG_FILE", "/tmp/test.log")
		t.Setenv("VIBELOG_AUTO_SAVE", "false")
		t.Setenv("VIBELOG_MAX_FILE_SIZE_MB", "25")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/test.log", cfg.LogFile)
		assert.False(t, cfg.AutoSave)
		assert.Equal(t, float64(25), cfg.MaxFileSizeMB)
	})
}

func TestLoadWithCLI(t *testing.T) {
	writeConfigFile := func(t *testing.T, body string) {
		t.Helper()
		path := filepath.Join(t.TempDir(), "vibelog.toml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		t.Setenv("VIBELOG_CONFIG_FILE", path)
	}

	t.Run("FileOverridesDefaults", func(t *testing.T) {
		writeConfigFile(t, "log_file = \"/tmp/from-file.log\"\nmax_memory_logs = 250\n")

		cfg, err := LoadWithCLI(nil)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/from-file.log", cfg.LogFile)
		assert.Equal(t, 250, cfg.MaxMemoryLogs)
		// Untouched keys keep their defaults
		assert.True(t, cfg.AutoSave)
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		writeConfigFile(t, "log_file = \"/tmp/from-file.log\"\n")
		t.Setenv("VIBELOG_LOG_FILE", "/tmp/from-env.log")

		cfg, err := LoadWithCLI(nil)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/from-env.log", cfg.LogFile)
	})

	t.Run("CLIOverridesAll", func(t *testing.T) {
		writeConfigFile(t, "log_level = \"debug\"\n")
		t.Setenv("VIBELOG_LOG_LEVEL", "warning")

		cfg, err := LoadWithCLI([]string{"--log_level=error"})
		require.NoError(t, err)
		assert.Equal(t, "ERROR", cfg.LogLevel)
	})

	t.Run("MissingFileTolerated", func(t *testing.T) {
		t.Setenv("VIBELOG_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.toml"))

		cfg, err := LoadWithCLI(nil)
		require.NoError(t, err)
		assert.Equal(t, "INFO", cfg.LogLevel)
	})
}

func TestGetConfigPath(t *testing.T) {
	t.Run("ExplicitFile", func(t *testing.T) {
		t.Setenv("VIBELOG_CONFIG_FILE", "/etc/vibelog/custom.toml")
		assert.Equal(t, "/etc/vibelog/custom.toml", GetConfigPath())
	})

	t.Run("FileInDir", func(t *testing.T) {
		t.Setenv("VIBELOG_CONFIG_FILE", "custom.toml")
		t.Setenv("VIBELOG_CONFIG_DIR", "/etc/vibelog")
		assert.Equal(t, filepath.Join("/etc/vibelog", "custom.toml"), GetConfigPath())
	})

	t.Run("DirOnly", func(t *testing.T) {
		t.Setenv("VIBELOG_CONFIG_DIR", "/etc/vibelog")
		assert.Equal(t, filepath.Join("/etc/vibelog", "vibelog.toml"), GetConfigPath())
	})
}
