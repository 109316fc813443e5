// Package config loads the run configuration from HCL files into a
// strongly-typed model. Expressions in the files may reference the process
// environment as env.<NAME>, so secrets never have to live in the file.
package config

// Plan configures the expansion run itself.
type Plan struct {
	// Goal is the user objective handed to the source task. The CLI's
	// positional argument overrides it.
	Goal        string `hcl:"goal,optional"`
	MaxRounds   int    `hcl:"max_rounds,optional"`
	SnapshotDir string `hcl:"snapshot_dir,optional"`
}

// Oracle configures the inference backend behind the collaborators.
type Oracle struct {
	// BaseURL points at any OpenAI-compatible endpoint; empty means the
	// upstream default.
	BaseURL     string  `hcl:"base_url,optional"`
	Model       string  `hcl:"model"`
	APIKey      string  `hcl:"api_key,optional"`
	Temperature float64 `hcl:"temperature,optional"`
}

// Model is the fully decoded configuration.
type Model struct {
	Plan   *Plan
	Oracle *Oracle
}

// NewModel returns a Model with empty blocks, so flag-only runs need no file.
func NewModel() *Model {
	return &Model{Plan: &Plan{}, Oracle: &Oracle{}}
}
