// vibelog inspects JSON-lines log files, recovering as many entries as
// possible from partially corrupted files and printing them as a JSON
// array for downstream analysis.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"vibelog/src/internal/config"
	"vibelog/src/internal/core"
	"vibelog/src/internal/loader"
	"vibelog/src/internal/version"

	"github.com/lixenwraith/log"
)

func main() {
	flagCfg, err := ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	InitOutputHandler(flagCfg.Quiet)

	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if flagCfg.ConfigFile != "" {
		os.Setenv("VIBELOG_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.LoadWithCLI(os.Args[1:])
	if err != nil {
		if flagCfg.ConfigFile != "" && strings.Contains(err.Error(), "not found") {
			FatalError(2, "Config file not found: %s\n", flagCfg.ConfigFile)
		}
		FatalError(1, "Failed to load config: %v\n", err)
	}

	path := flagCfg.File
	if path == "" {
		path = cfg.LogFile
	}
	if path == "" {
		FatalError(2, "No log file given: pass -f or set VIBELOG_LOG_FILE\n")
	}

	entries, skipped, err := loader.New(newDiagLogger(flagCfg.Quiet)).Load(path)
	if err != nil {
		FatalError(1, "Failed to load log file: %v\n", err)
	}

	if flagCfg.Operation != "" {
		entries = filterByOperation(entries, flagCfg.Operation)
	}

	Error("Loaded %d entries, skipped %d corrupted lines\n", len(entries), skipped)

	if flagCfg.Summary {
		return
	}

	if entries == nil {
		entries = []core.LogEntry{}
	}
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		FatalError(1, "Failed to serialize entries: %v\n", err)
	}
	fmt.Println(string(out))
}

func filterByOperation(entries []core.LogEntry, substr string) []core.LogEntry {
	kept := entries[:0]
	for _, e := range entries {
		if strings.Contains(e.Operation, substr) {
			kept = append(kept, e)
		}
	}
	return kept
}

// newDiagLogger builds the stderr diagnostics channel; in quiet mode it
// stays uninitialized and discards everything.
func newDiagLogger(quiet bool) *log.Logger {
	diag := log.NewLogger()
	if quiet {
		return diag
	}
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
