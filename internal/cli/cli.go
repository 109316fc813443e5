// Package cli parses command-line arguments into an application config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/taskgraphgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app config,
// a boolean indicating the program should exit cleanly (help requested or
// nothing to do), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("taskgraphgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
taskgraphgo - grows a plan as a dynamic task graph, expanding tasks into
subtasks round by round until the goal's output reaches the sink.

Usage:
  taskgraphgo [options] [GOAL]

Arguments:
  GOAL
    The objective handed to the source task. Overrides plan.goal from the
    configuration file.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a .hcl config file or a directory of them.")
	cFlag := flagSet.String("c", "", "Path to a .hcl config file or a directory of them (shorthand).")
	maxRoundsFlag := flagSet.Int("max-rounds", 0, "Round limit for the expansion loop. 0 uses the configured value.")
	snapshotDirFlag := flagSet.String("snapshot-dir", "", "Directory receiving one DOT snapshot per round. Empty disables snapshots.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	configPath := *configFlag
	if configPath == "" {
		configPath = *cFlag
	}

	goal := strings.TrimSpace(strings.Join(flagSet.Args(), " "))
	if goal == "" && configPath == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid log format %q: expected 'text' or 'json'", *logFormatFlag)}
	}

	return &app.Config{
		ConfigPath:  configPath,
		Goal:        goal,
		MaxRounds:   *maxRoundsFlag,
		SnapshotDir: *snapshotDirFlag,
		LogFormat:   logFormat,
		LogLevel:    strings.ToLower(*logLevelFlag),
	}, false, nil
}
