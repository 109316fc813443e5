package taskgraph

// TopologicalSort returns a valid topological order over all task names,
// using Kahn's algorithm.
//
// The ready collection is seeded with zero-in-degree nodes in insertion order
// and consumed as a stack: the most recently readied node is scheduled next.
// The result is therefore *a* valid order, not a canonical one, and callers
// must not rely on any particular order among siblings. A result shorter than
// the node count means the graph holds a cycle and the sort fails with
// AcyclicError.
func (g *Graph) TopologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(g.nodes))
	for _, name := range g.order {
		for succ := range g.nodes[name].outEdges {
			inDegree[succ]++
		}
	}

	ready := make([]string, 0, len(g.nodes))
	for _, name := range g.order {
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		name := ready[len(ready)-1]
		ready = ready[:len(ready)-1]
		result = append(result, name)
		for succ := range g.nodes[name].outEdges {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, &AcyclicError{Sorted: len(result), Total: len(g.nodes)}
	}
	return result, nil
}

// Validate reports whether the graph is a valid DAG.
func (g *Graph) Validate() bool {
	_, err := g.TopologicalSort()
	return err == nil
}

// AllDownstreams returns every task reachable from name via out-edges,
// including name itself, as a subsequence of a full topological sort. The
// result is therefore a valid partial topological order, not just a
// reachable set.
func (g *Graph) AllDownstreams(name string) ([]string, error) {
	if _, ok := g.nodes[name]; !ok {
		return nil, &UnknownNodeError{Name: name}
	}

	seen := make(map[string]struct{})
	stack := []string{name}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, dup := seen[cur]; dup {
			continue
		}
		seen[cur] = struct{}{}
		for succ := range g.nodes[cur].outEdges {
			stack = append(stack, succ)
		}
	}

	full, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}
	downstream := make([]string, 0, len(seen))
	for _, n := range full {
		if _, ok := seen[n]; ok {
			downstream = append(downstream, n)
		}
	}
	return downstream, nil
}
