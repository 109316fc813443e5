// Package taskgraph implements the dynamic task graph: an insertion-ordered
// DAG store whose every mutation preserves acyclicity.
//
// The graph exclusively owns its nodes and their tasks. It is not safe for
// concurrent use; the expansion engine is the single writer for the lifetime
// of a run.
package taskgraph

import (
	"slices"

	"github.com/vk/taskgraphgo/internal/task"
)

// node wraps a task with its neighbor sets. Both sets hold task names.
type node struct {
	task     *task.Task
	outEdges map[string]struct{}
	inEdges  map[string]struct{}
}

// Edge is one directed edge of the graph.
type Edge struct {
	From, To string
}

// Graph is an insertion-ordered DAG of tasks keyed by task name.
type Graph struct {
	nodes map[string]*node
	// order tracks node names in insertion order, driving deterministic
	// iteration for scheduling and rendering.
	order []string
}

// New returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Contains reports whether a task with the given name is present.
func (g *Graph) Contains(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Get returns the task stored under name.
func (g *Graph) Get(name string) (*task.Task, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, &UnknownNodeError{Name: name}
	}
	return n.task, nil
}

// Names returns all task names in insertion order.
func (g *Graph) Names() []string {
	return slices.Clone(g.order)
}

// Edges returns every edge of the graph, grouped by the insertion order of
// the originating node and ordered deterministically within each group.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, name := range g.order {
		for _, to := range g.sortedNeighbors(g.nodes[name].outEdges) {
			edges = append(edges, Edge{From: name, To: to})
		}
	}
	return edges
}

// AddNode inserts t at the end of iteration order. A nameless task or a name
// collision fails with DuplicateNodeError.
func (g *Graph) AddNode(t *task.Task) error {
	if t == nil || t.Name == "" {
		return &DuplicateNodeError{}
	}
	if _, ok := g.nodes[t.Name]; ok {
		return &DuplicateNodeError{Name: t.Name}
	}
	g.nodes[t.Name] = &node{
		task:     t,
		outEdges: make(map[string]struct{}),
		inEdges:  make(map[string]struct{}),
	}
	g.order = append(g.order, t.Name)
	return nil
}

// DeleteNode removes name together with every edge referencing it, so
// dangling edge references are impossible afterwards.
func (g *Graph) DeleteNode(name string) error {
	n, ok := g.nodes[name]
	if !ok {
		return &UnknownNodeError{Name: name}
	}
	for pred := range n.inEdges {
		delete(g.nodes[pred].outEdges, name)
	}
	for succ := range n.outEdges {
		delete(g.nodes[succ].inEdges, name)
	}
	delete(g.nodes, name)
	g.order = slices.DeleteFunc(g.order, func(s string) bool { return s == name })
	return nil
}

// AddEdge commits the edge from -> to provided the graph stays acyclic.
//
// The guard simulates the edge on a structural copy and re-runs the
// topological sort there; on rejection the live graph is untouched and the
// call fails with CycleError. The copy-and-resort check is O(V+E) per call
// and intentionally simple.
func (g *Graph) AddEdge(from, to string) error {
	fromNode, ok := g.nodes[from]
	if !ok {
		return &UnknownNodeError{Name: from}
	}
	toNode, ok := g.nodes[to]
	if !ok {
		return &UnknownNodeError{Name: to}
	}
	if _, dup := fromNode.outEdges[to]; dup {
		return &DuplicateEdgeError{From: from, To: to}
	}

	trial := g.cloneStructure()
	trial.nodes[from].outEdges[to] = struct{}{}
	trial.nodes[to].inEdges[from] = struct{}{}
	if _, err := trial.TopologicalSort(); err != nil {
		return &CycleError{From: from, To: to}
	}

	fromNode.outEdges[to] = struct{}{}
	toNode.inEdges[from] = struct{}{}
	return nil
}

// DeleteEdge removes the edge from -> to from both endpoints. Removal cannot
// introduce a cycle, so no re-validation happens.
func (g *Graph) DeleteEdge(from, to string) error {
	fromNode, ok := g.nodes[from]
	if !ok {
		return &UnknownEdgeError{From: from, To: to}
	}
	if _, ok := fromNode.outEdges[to]; !ok {
		return &UnknownEdgeError{From: from, To: to}
	}
	delete(fromNode.outEdges, to)
	delete(g.nodes[to].inEdges, from)
	return nil
}

// Successors returns name's direct successors in graph insertion order.
func (g *Graph) Successors(name string) ([]string, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, &UnknownNodeError{Name: name}
	}
	return g.sortedNeighbors(n.outEdges), nil
}

// Predecessors returns name's direct predecessors in graph insertion order.
func (g *Graph) Predecessors(name string) ([]string, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, &UnknownNodeError{Name: name}
	}
	return g.sortedNeighbors(n.inEdges), nil
}

// sortedNeighbors projects a neighbor set onto the graph's insertion order.
func (g *Graph) sortedNeighbors(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for _, name := range g.order {
		if _, ok := set[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// cloneStructure copies the node and edge shape but shares task pointers; the
// edge guard only needs the shape.
func (g *Graph) cloneStructure() *Graph {
	clone := &Graph{
		nodes: make(map[string]*node, len(g.nodes)),
		order: slices.Clone(g.order),
	}
	for name, n := range g.nodes {
		cn := &node{
			task:     n.task,
			outEdges: make(map[string]struct{}, len(n.outEdges)),
			inEdges:  make(map[string]struct{}, len(n.inEdges)),
		}
		for k := range n.outEdges {
			cn.outEdges[k] = struct{}{}
		}
		for k := range n.inEdges {
			cn.inEdges[k] = struct{}{}
		}
		clone.nodes[name] = cn
	}
	return clone
}
