// Package engine drives the round-based execute-and-expand loop over the
// task graph: executing ready tasks, fanning outputs into successor inputs,
// and splicing newly discovered subtasks into the graph between rounds of
// collaborator calls.
package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/taskgraphgo/internal/ctxlog"
	"github.com/vk/taskgraphgo/internal/oracle"
	"github.com/vk/taskgraphgo/internal/render"
	"github.com/vk/taskgraphgo/internal/task"
	"github.com/vk/taskgraphgo/internal/taskgraph"
)

// MissingInputError reports a ready task whose input slot was never resolved
// by any predecessor. A task must not execute without an input.
type MissingInputError struct {
	Task string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("task %q has no resolved input", e.Task)
}

// Options configure an engine around an already-seeded graph.
type Options struct {
	// SourceName and SinkName identify the sentinel nodes the caller
	// inserted before the run.
	SourceName string
	SinkName   string
	// SnapshotDir receives one DOT file per round. Empty disables
	// snapshots only if the renderer discards them.
	SnapshotDir string
}

// Engine expands and executes the task graph round by round. It is the
// single writer over the graph for the lifetime of a run: all structural
// mutation funnels through the graph's validated entry points, strictly in
// sequence, so every splice is transactional with respect to acyclicity.
type Engine struct {
	graph    *taskgraph.Graph
	oracle   oracle.Oracle
	renderer render.Renderer
	opts     Options

	finalOutput string
	done        bool
}

// New wires an engine around a graph that already holds the source and sink
// sentinels connected by a single edge. All collaborators are injected; the
// engine holds no process-global state.
func New(g *taskgraph.Graph, o oracle.Oracle, r render.Renderer, opts Options) *Engine {
	return &Engine{graph: g, oracle: o, renderer: r, opts: opts}
}

// FinalOutput returns the sink's resolved input once the run completed.
func (e *Engine) FinalOutput() (string, bool) {
	return e.finalOutput, e.done
}

// Run executes up to maxRounds rounds, stopping early once the sink's input
// slot resolves. Cancellation is checked at every round boundary and the
// context is handed to every collaborator call, so an abort never observes a
// half-spliced graph: splices complete entirely within their round.
//
// Structural errors are fatal to the run; the loop does not retry them.
func (e *Engine) Run(ctx context.Context, maxRounds int) error {
	logger := ctxlog.FromContext(ctx)
	for round := 1; round <= maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("Round starting.", "round", round, "nodes", e.graph.Len())

		var err error
		if e.bootstrapPending() {
			err = e.bootstrap(ctx)
		} else {
			err = e.executeRound(ctx)
		}
		if err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}

		if err := e.snapshot(round); err != nil {
			logger.Warn("Snapshot failed.", "round", round, "error", err)
		}

		if e.done {
			logger.Info("Sink input resolved, run complete.", "round", round)
			return nil
		}
	}
	logger.Info("Round limit reached.", "max_rounds", maxRounds)
	return nil
}

// bootstrapPending reports whether the graph still holds only the sentinels.
func (e *Engine) bootstrapPending() bool {
	return e.graph.Len() == 2
}

// bootstrap derives the first real task from the source's goal and splices
// it between the sentinels. The direct source-to-sink edge is deleted only
// after both replacement edges committed, so the sink is never unreachable.
func (e *Engine) bootstrap(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	src, err := e.graph.Get(e.opts.SourceName)
	if err != nil {
		return err
	}
	goal := src.Input

	name, err := e.oracle.DeriveTaskName(ctx, goal)
	if err != nil {
		return fmt.Errorf("derive first task name: %w", err)
	}
	logger.Info("Bootstrapping graph with first task.", "task", name)

	first := task.New(name, goal)
	if err := e.graph.AddNode(first); err != nil {
		return err
	}
	if err := e.graph.AddEdge(e.opts.SourceName, name); err != nil {
		return err
	}
	if err := e.graph.AddEdge(name, e.opts.SinkName); err != nil {
		return err
	}
	if err := e.graph.DeleteEdge(e.opts.SourceName, e.opts.SinkName); err != nil {
		return err
	}

	first.Input = goal
	first.HasInput = true
	first.Context = []string{e.opts.SourceName}
	src.Output = goal
	return nil
}

// executeRound walks the current topological order, executing every regular
// task and fanning its output into successor input slots. Tasks spliced in
// during the round are not part of the order and execute next round.
func (e *Engine) executeRound(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	order, err := e.graph.TopologicalSort()
	if err != nil {
		return err
	}

	// firstWrite tracks which input slots were already written this round.
	// Execution is strictly sequential, so writes cannot race; at a fan-in,
	// contributions from distinct predecessors are joined in execution order.
	firstWrite := make(map[string]bool)

	for _, name := range order {
		t, err := e.graph.Get(name)
		if err != nil {
			return err
		}

		switch t.Kind {
		case task.KindSource:
			// The source produced its pair at bootstrap; nothing to execute.
			continue
		case task.KindSink:
			if t.HasInput {
				t.Output = t.Input
				e.finalOutput = t.Input
				e.done = true
			}
			continue
		}

		if !t.HasInput {
			return &MissingInputError{Task: name}
		}

		logger.Debug("Executing task.", "task", name)
		output, alloc, err := e.executeTask(ctx, t)
		if err != nil {
			return err
		}
		t.Output = output

		if !alloc.Satisfied {
			if err := e.splice(ctx, name, alloc); err != nil {
				return err
			}
		}

		// After a splice the successors are the freshly inserted subtasks;
		// otherwise they are the unchanged downstream tasks.
		succs, err := e.graph.Successors(name)
		if err != nil {
			return err
		}
		for _, succ := range succs {
			if err := e.writeInput(firstWrite, name, succ, output); err != nil {
				return err
			}
		}
	}
	return nil
}

// executeTask answers the task's input via the actor and asks the allocator
// to judge the answer.
func (e *Engine) executeTask(ctx context.Context, t *task.Task) (string, oracle.AllocationResult, error) {
	answer, err := e.oracle.AskActor(ctx, t.Input)
	if err != nil {
		return "", oracle.AllocationResult{}, fmt.Errorf("actor for %q: %w", t.Name, err)
	}
	alloc, err := e.oracle.AskAllocator(ctx, allocationInput(t, answer))
	if err != nil {
		return "", oracle.AllocationResult{}, fmt.Errorf("allocator for %q: %w", t.Name, err)
	}
	return answer, alloc, nil
}

// allocationInput renders the single input string the allocator judges.
func allocationInput(t *task.Task, answer string) string {
	return fmt.Sprintf("Task: %s\nDescription: %s\n\nTask input:\n%s\n\nActor answer:\n%s",
		t.Name, t.Description, t.Input, answer)
}

// writeInput stores output into succ's pending input slot and records from
// as the contributing task. The first writer of a round sets the slot; later
// distinct predecessors append, so a fan-in receives every branch's output in
// deterministic execution order.
func (e *Engine) writeInput(firstWrite map[string]bool, from, succ, output string) error {
	t, err := e.graph.Get(succ)
	if err != nil {
		return err
	}
	if firstWrite[succ] {
		t.Input = t.Input + "\n\n" + output
		t.Context = append(t.Context, from)
		return nil
	}
	t.Input = output
	t.HasInput = true
	t.Context = []string{from}
	firstWrite[succ] = true
	return nil
}

// snapshot renders the graph after a round. Failures are reported to the
// caller for logging; they never abort the run.
func (e *Engine) snapshot(round int) error {
	graphEdges := e.graph.Edges()
	edges := make([]render.Edge, len(graphEdges))
	for i, ge := range graphEdges {
		edges[i] = render.Edge{From: ge.From, To: ge.To}
	}

	labels := make(map[string]string, e.graph.Len())
	for _, name := range e.graph.Names() {
		t, err := e.graph.Get(name)
		if err != nil {
			return err
		}
		switch t.Kind {
		case task.KindSource, task.KindSink:
			labels[name] = fmt.Sprintf("%s (%s)", name, t.Kind)
		default:
			labels[name] = name
		}
	}

	path := filepath.Join(e.opts.SnapshotDir, fmt.Sprintf("round_%02d.dot", round))
	return e.renderer.Render(edges, labels, path)
}
