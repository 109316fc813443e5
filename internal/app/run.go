package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/taskgraphgo/internal/ctxlog"
	"github.com/vk/taskgraphgo/internal/engine"
	"github.com/vk/taskgraphgo/internal/oracle"
	"github.com/vk/taskgraphgo/internal/render"
	"github.com/vk/taskgraphgo/internal/task"
	"github.com/vk/taskgraphgo/internal/taskgraph"
)

// Sentinel node names, matching the reserved source/sink task variants.
const (
	sourceTaskName = "alpha_task"
	sinkTaskName   = "omega_task"
)

// Run drives one expansion run to completion: it seeds the two-sentinel
// graph, wires the collaborators, executes the round loop, and prints the
// sink's final output.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger.With("run_id", a.runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	g, err := seedGraph(a.cfg.Goal)
	if err != nil {
		return fmt.Errorf("seed graph: %w", err)
	}

	opts := engine.Options{SourceName: sourceTaskName, SinkName: sinkTaskName}
	var renderer render.Renderer = render.Discard{}
	if a.cfg.SnapshotDir != "" {
		// Each run snapshots into its own directory so runs never clobber
		// one another.
		opts.SnapshotDir = filepath.Join(a.cfg.SnapshotDir, a.runID)
		renderer = render.DotRenderer{}
		logger.Debug("Snapshots enabled.", "dir", opts.SnapshotDir)
	}

	eng := engine.New(g, a.newOracle(), renderer, opts)

	logger.Info("Starting expansion run.", "goal", a.cfg.Goal, "max_rounds", a.cfg.MaxRounds)
	if err := eng.Run(ctx, a.cfg.MaxRounds); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if out, done := eng.FinalOutput(); done {
		logger.Info("Run reached the sink.")
		fmt.Fprintln(a.outW, out)
	} else {
		logger.Warn("Run ended before the sink resolved.", "max_rounds", a.cfg.MaxRounds)
	}

	logger.Debug("App.Run method finished.")
	return nil
}

// newOracle builds the inference-backed collaborators from configuration,
// falling back to the conventional environment variable for the key.
func (a *App) newOracle() oracle.Oracle {
	o := a.model.Oracle
	apiKey := o.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	model := o.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return oracle.NewClient(oracle.Options{
		BaseURL:     o.BaseURL,
		APIKey:      apiKey,
		Model:       model,
		Temperature: float32(o.Temperature),
	})
}

// seedGraph builds the bootstrap graph: source and sink sentinels joined by
// a single edge.
func seedGraph(goal string) (*taskgraph.Graph, error) {
	g := taskgraph.New()
	if err := g.AddNode(task.NewSource(sourceTaskName, goal)); err != nil {
		return nil, err
	}
	if err := g.AddNode(task.NewSink(sinkTaskName)); err != nil {
		return nil, err
	}
	if err := g.AddEdge(sourceTaskName, sinkTaskName); err != nil {
		return nil, err
	}
	return g, nil
}
