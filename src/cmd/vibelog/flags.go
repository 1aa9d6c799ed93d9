package main

import (
	"flag"
	"fmt"
	"os"
)

// FlagConfig holds the command-line options.
type FlagConfig struct {
	File        string
	ConfigFile  string
	Operation   string
	Summary     bool
	Quiet       bool
	ShowVersion bool
}

// ParseFlags reads the command line. Unknown flags are an error.
func ParseFlags(args []string) (*FlagConfig, error) {
	fc := &FlagConfig{}

	fs := flag.NewFlagSet("vibelog", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }
	fs.StringVar(&fc.File, "f", "", "Log file to inspect (default: log_file from the loaded config)")
	fs.StringVar(&fc.ConfigFile, "config", "", "Config file path (default: VIBELOG_CONFIG_FILE or ~/.config/vibelog.toml)")
	fs.StringVar(&fc.Operation, "operation", "", "Only show entries whose operation contains this substring")
	fs.BoolVar(&fc.Summary, "summary", false, "Print only the recovery summary, not the entries")
	fs.BoolVar(&fc.Quiet, "quiet", false, "Suppress diagnostics; print only the JSON result")
	fs.BoolVar(&fc.ShowVersion, "version", false, "Show version information")

	// Config override flags. Values are picked up by the config loader
	// from the raw argument list; declared here so parsing accepts them.
	fs.String("log_file", "", "Log file path (overrides config)")
	fs.String("log_level", "", "Minimum level: debug, info, warning, error, critical (overrides config)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fc, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, "vibelog - Structured Log Inspection and Recovery\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	fs.PrintDefaults()

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Recover entries from a possibly corrupted log file\n")
	fmt.Fprintf(os.Stderr, "  %s -f ./logs/app/vibe_20250707_100000.log\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  # Only entries from one operation, machine-readable\n")
	fmt.Fprintf(os.Stderr, "  %s -f app.log -operation fetch_user -quiet\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Custom config with a level override\n")
	fmt.Fprintf(os.Stderr, "  %s -config /etc/vibelog.toml --log_level=error\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "Environment Variables:\n")
	fmt.Fprintf(os.Stderr, "  VIBELOG_LOG_FILE    Default log file when -f is not given\n")
	fmt.Fprintf(os.Stderr, "  VIBELOG_CONFIG_FILE Config file path\n")
	fmt.Fprintf(os.Stderr, "  VIBELOG_CONFIG_DIR  Config directory\n")
}
