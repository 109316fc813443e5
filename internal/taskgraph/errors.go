package taskgraph

import "fmt"

// DuplicateNodeError reports an insertion whose task name is already present,
// or a task that has no name at all.
type DuplicateNodeError struct {
	Name string
}

func (e *DuplicateNodeError) Error() string {
	if e.Name == "" {
		return "task graph: task has no name"
	}
	return fmt.Sprintf("task graph: node %q already exists", e.Name)
}

// UnknownNodeError reports a reference to a task name not present in the graph.
type UnknownNodeError struct {
	Name string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("task graph: node %q does not exist", e.Name)
}

// DuplicateEdgeError reports an edge addition that is already present.
type DuplicateEdgeError struct {
	From, To string
}

func (e *DuplicateEdgeError) Error() string {
	return fmt.Sprintf("task graph: edge %s -> %s already exists", e.From, e.To)
}

// UnknownEdgeError reports a reference to an edge not present in the graph.
type UnknownEdgeError struct {
	From, To string
}

func (e *UnknownEdgeError) Error() string {
	return fmt.Sprintf("task graph: edge %s -> %s does not exist", e.From, e.To)
}

// CycleError reports an edge addition rejected because it would close a
// cycle. The graph is left unchanged when this error is returned.
type CycleError struct {
	From, To string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("task graph: edge %s -> %s would create a cycle", e.From, e.To)
}

// AcyclicError reports a topological sort that could not cover every node,
// meaning the graph holds a cycle. Every committed mutation preserves
// acyclicity, so seeing this outside the edge guard indicates a broken
// internal invariant.
type AcyclicError struct {
	Sorted, Total int
}

func (e *AcyclicError) Error() string {
	return fmt.Sprintf("task graph: not acyclic, sorted %d of %d nodes", e.Sorted, e.Total)
}
