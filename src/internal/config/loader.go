package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// LoadWithCLI builds a Config layered from CLI arguments, VIBELOG_*
// environment variables, the config file and defaults, in that order of
// precedence. A missing config file is not an error.
func LoadWithCLI(cliArgs []string) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(Default()).
		WithEnvPrefix("VIBELOG_").
		WithFile(configPath).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()
	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	final := &Config{}
	if err := cfg.Scan(final, ""); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	final.Normalize()
	return final, nil
}

// FromEnv builds a Config from defaults and VIBELOG_* environment
// variables only, skipping file and CLI sources.
func FromEnv() (*Config, error) {
	cfg, err := lconfig.NewBuilder().
		WithDefaults(Default()).
		WithEnvPrefix("VIBELOG_").
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceEnv,
			lconfig.SourceDefault,
		).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	final := &Config{}
	if err := cfg.Scan(final, ""); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	final.Normalize()
	return final, nil
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	return "VIBELOG_" + env
}

// GetConfigPath resolves the config file location from VIBELOG_CONFIG_FILE
// and VIBELOG_CONFIG_DIR, defaulting to ~/.config/vibelog.toml.
func GetConfigPath() string {
	if configFile := os.Getenv("VIBELOG_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("VIBELOG_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("VIBELOG_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "vibelog.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "vibelog.toml")
	}

	return "vibelog.toml"
}
