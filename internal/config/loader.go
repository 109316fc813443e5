package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskgraphgo/internal/ctxlog"
	"github.com/vk/taskgraphgo/internal/fsutil"
)

// fileRoot decodes the top-level blocks of any configuration file.
type fileRoot struct {
	Plan   *Plan   `hcl:"plan,block"`
	Oracle *Oracle `hcl:"oracle,block"`
}

// Load discovers every .hcl file under path (a file or a directory), parses
// them, and merges their blocks into a single Model. A block appearing in
// more than one file is a configuration error.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("discover config files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl configuration found under %s", path)
	}
	logger.Debug("Discovered configuration files.", "count", len(files))

	model := NewModel()
	evalCtx := envEvalContext()
	parser := hclparse.NewParser()
	planSeen, oracleSeen := "", ""

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}

		if root.Plan != nil {
			if planSeen != "" {
				return nil, fmt.Errorf("duplicate plan block: %s and %s", planSeen, file)
			}
			planSeen = file
			model.Plan = root.Plan
		}
		if root.Oracle != nil {
			if oracleSeen != "" {
				return nil, fmt.Errorf("duplicate oracle block: %s and %s", oracleSeen, file)
			}
			oracleSeen = file
			model.Oracle = root.Oracle
		}
	}

	logger.Debug("Configuration loaded.", "plan_from", planSeen, "oracle_from", oracleSeen)
	return model, nil
}

// envEvalContext exposes the process environment to config expressions as
// env.<NAME>.
func envEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}
