// Package app wires the configuration, collaborators and engine into one
// runnable application instance.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vk/taskgraphgo/internal/config"
	"github.com/vk/taskgraphgo/internal/ctxlog"
)

// Config holds everything an App needs to run. CLI flags override values
// loaded from the configuration file.
type Config struct {
	ConfigPath string // optional .hcl file or directory
	Goal       string // positional argument; overrides plan.goal

	MaxRounds   int
	SnapshotDir string
	LogFormat   string
	LogLevel    string
}

// defaultMaxRounds bounds a run that never resolves its sink.
const defaultMaxRounds = 8

// App encapsulates one expansion run's dependencies and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	model  *config.Model
	cfg    *Config
	runID  string
}

// NewApp constructs the application: an isolated logger, the merged
// configuration, and a fresh run identity. Configuration failures are fatal
// startup errors and panic; the CLI entrypoint recovers them into a clean
// exit.
func NewApp(outW io.Writer, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model := config.NewModel()
	if cfg.ConfigPath != "" {
		loaded, err := config.Load(ctx, cfg.ConfigPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		model = loaded
	}

	// Flags win over file values; files win over defaults.
	if cfg.Goal == "" {
		cfg.Goal = model.Plan.Goal
	}
	if cfg.MaxRounds == 0 {
		cfg.MaxRounds = model.Plan.MaxRounds
	}
	if cfg.MaxRounds == 0 {
		cfg.MaxRounds = defaultMaxRounds
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = model.Plan.SnapshotDir
	}
	if cfg.Goal == "" {
		panic(fmt.Errorf("no goal: pass one as an argument or set plan.goal in the configuration"))
	}

	runID := uuid.NewString()
	logger.Debug("Application constructed.", "run_id", runID, "max_rounds", cfg.MaxRounds)

	return &App{
		outW:   outW,
		logger: logger,
		model:  model,
		cfg:    cfg,
		runID:  runID,
	}
}
