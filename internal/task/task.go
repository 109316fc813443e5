// Package task defines the unit of work scheduled by the task graph.
package task

// Kind distinguishes the three task variants the engine schedules. The set
// is closed: callers dispatch on the tag, never on runtime types.
type Kind int

const (
	// KindRegular is an ordinary unit of work discovered by decomposition.
	KindRegular Kind = iota
	// KindSource is the entry sentinel. It has no dependency input and
	// yields the run's initial input together with the first task name.
	KindSource
	// KindSink is the exit sentinel. It consumes the graph's final output
	// and produces none.
	KindSink
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindSink:
		return "sink"
	default:
		return "regular"
	}
}

// Task is a named unit of work. Name is the identity key within a graph.
//
// Input is the pending input slot written by a predecessor during a round;
// HasInput distinguishes an empty input from an unresolved one. Output is the
// task's latest textual result, rewritten by the round loop on each
// execution.
type Task struct {
	Name        string
	Description string
	Kind        Kind

	Input    string
	HasInput bool
	Output   string

	// Context lists the tasks whose output feeds this one, in order.
	Context []string
}

// New returns a regular task.
func New(name, description string) *Task {
	return &Task{Name: name, Description: description, Kind: KindRegular}
}

// NewSource returns the entry sentinel carrying the run's goal as its input.
func NewSource(name, goal string) *Task {
	return &Task{
		Name:        name,
		Description: "Entry sentinel producing the run's initial input.",
		Kind:        KindSource,
		Input:       goal,
		HasInput:    true,
	}
}

// NewSink returns the exit sentinel.
func NewSink(name string) *Task {
	return &Task{
		Name:        name,
		Description: "Exit sentinel consuming the graph's final output.",
		Kind:        KindSink,
	}
}
