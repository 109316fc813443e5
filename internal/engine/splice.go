package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/taskgraphgo/internal/ctxlog"
	"github.com/vk/taskgraphgo/internal/oracle"
	"github.com/vk/taskgraphgo/internal/task"
)

// splice inserts the decomposition's subtasks strictly between name and its
// current successors, then retires the direct edges. The replacement paths
// are committed before any old edge is deleted, so downstream tasks never
// become unreachable mid-splice.
func (e *Engine) splice(ctx context.Context, name string, alloc oracle.AllocationResult) error {
	logger := ctxlog.FromContext(ctx)

	succs, err := e.graph.Successors(name)
	if err != nil {
		return err
	}

	subs := slices.Clone(alloc.Subtasks)
	slices.SortStableFunc(subs, func(a, b oracle.Subtask) int { return a.Order - b.Order })

	for _, sub := range subs {
		if err := e.graph.AddNode(task.New(sub.Name, sub.Description)); err != nil {
			return err
		}
	}

	switch alloc.Mode {
	case oracle.ModeSequential:
		// name -> subs[0] -> ... -> subs[n-1] -> old successors.
		prev := name
		for _, sub := range subs {
			if err := e.graph.AddEdge(prev, sub.Name); err != nil {
				return err
			}
			prev = sub.Name
		}
		for _, succ := range succs {
			if err := e.graph.AddEdge(prev, succ); err != nil {
				return err
			}
		}
	case oracle.ModeParallel:
		// Each subtask fans out from name and back into every old successor.
		for _, sub := range subs {
			if err := e.graph.AddEdge(name, sub.Name); err != nil {
				return err
			}
			for _, succ := range succs {
				if err := e.graph.AddEdge(sub.Name, succ); err != nil {
					return err
				}
			}
		}
	default:
		return fmt.Errorf("splice %q: unknown decomposition mode %q", name, alloc.Mode)
	}

	for _, succ := range succs {
		if err := e.graph.DeleteEdge(name, succ); err != nil {
			return err
		}
	}

	logger.Info("Spliced subtasks into graph.",
		"task", name, "mode", string(alloc.Mode), "subtasks", len(subs))
	return nil
}
