// Package oracle defines the collaborator boundary the engine consults for
// task execution and decomposition decisions, together with the production
// implementation backed by an OpenAI-compatible inference endpoint.
package oracle

import "context"

// Mode selects how an unsatisfied task decomposes into subtasks.
type Mode string

const (
	// ModeSequential chains the subtasks so each one feeds the next.
	ModeSequential Mode = "sequential"
	// ModeParallel inserts the subtasks as independent siblings between the
	// decomposed task and its successors (fan-out/fan-in).
	ModeParallel Mode = "parallel"
)

// Subtask is one descriptor in a decomposition.
type Subtask struct {
	Order       int
	Description string
	Name        string
}

// AllocationResult is the allocator's verdict for a single task. Mode and
// Subtasks are populated iff Satisfied is false.
type AllocationResult struct {
	Satisfied bool
	Reasoning string
	Mode      Mode
	Subtasks  []Subtask
}

// Oracle answers a task's input (the actor) and judges whether the answer
// satisfies the task, decomposing it when it does not (the allocator).
// Implementations are I/O-bound network clients; every call honors ctx.
type Oracle interface {
	// AskActor produces a free-form textual answer to the task input.
	AskActor(ctx context.Context, input string) (string, error)

	// AskAllocator judges the task against its input and, for unsatisfied
	// tasks, returns a decomposition. Replies that do not match the
	// allocator schema fail with *ParseError.
	AskAllocator(ctx context.Context, input string) (AllocationResult, error)

	// DeriveTaskName condenses the run's goal into the name of the first
	// task, used once during the bootstrap round.
	DeriveTaskName(ctx context.Context, goal string) (string, error)
}
