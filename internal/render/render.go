// Package render writes per-round snapshots of the task graph for
// observability. Snapshots are Graphviz DOT files, one per round.
package render

// Edge is one directed edge of a snapshot.
type Edge struct {
	From, To string
}

// Renderer persists a single snapshot of the graph per call. outputPath is a
// rotating per-round file name; implementations create intermediate
// directories as needed.
type Renderer interface {
	Render(edges []Edge, labels map[string]string, outputPath string) error
}

// Discard drops snapshots. Used when no snapshot directory is configured.
type Discard struct{}

// Render implements Renderer.
func (Discard) Render([]Edge, map[string]string, string) error { return nil }
