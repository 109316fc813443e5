package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/emicklei/dot"
)

// DotRenderer writes Graphviz DOT snapshots, laid out left to right so the
// source-to-sink flow reads naturally.
type DotRenderer struct{}

// Render implements Renderer.
func (DotRenderer) Render(edges []Edge, labels map[string]string, outputPath string) error {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")

	nodes := make(map[string]dot.Node)
	add := func(name string) dot.Node {
		if n, ok := nodes[name]; ok {
			return n
		}
		n := g.Node(name)
		if label, ok := labels[name]; ok && label != "" {
			n = n.Label(label)
		}
		nodes[name] = n
		return n
	}

	// Declare labeled nodes first, in a stable order, so isolated nodes
	// still appear and repeated renders diff cleanly.
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		add(name)
	}
	for _, e := range edges {
		g.Edge(add(e.From), add(e.To))
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(g.String()), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
