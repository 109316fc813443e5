package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_SingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plan.hcl", `
plan {
  goal         = "summarize the quarterly numbers"
  max_rounds   = 6
  snapshot_dir = "snapshots"
}

oracle {
  model       = "gpt-4o-mini"
  temperature = 0.2
}
`)

	model, err := Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "summarize the quarterly numbers", model.Plan.Goal)
	assert.Equal(t, 6, model.Plan.MaxRounds)
	assert.Equal(t, "snapshots", model.Plan.SnapshotDir)
	assert.Equal(t, "gpt-4o-mini", model.Oracle.Model)
	assert.InDelta(t, 0.2, model.Oracle.Temperature, 1e-9)
}

func TestLoad_BlocksSplitAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plan.hcl", `
plan {
  goal = "write a changelog"
}
`)
	writeFile(t, dir, "oracle.hcl", `
oracle {
  model = "llama3"
}
`)

	model, err := Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "write a changelog", model.Plan.Goal)
	assert.Equal(t, "llama3", model.Oracle.Model)
}

func TestLoad_EnvReference(t *testing.T) {
	t.Setenv("TGGO_TEST_API_KEY", "sk-test-123")

	dir := t.TempDir()
	path := writeFile(t, dir, "oracle.hcl", `
oracle {
  model   = "gpt-4o-mini"
  api_key = env.TGGO_TEST_API_KEY
}
`)

	model, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", model.Oracle.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("no files found", func(t *testing.T) {
		_, err := Load(context.Background(), t.TempDir())
		require.ErrorContains(t, err, "no .hcl configuration")
	})

	t.Run("syntax error", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "broken.hcl", `plan { goal = `)
		_, err := Load(context.Background(), dir)
		require.ErrorContains(t, err, "failed to parse")
	})

	t.Run("duplicate block", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.hcl", `plan { goal = "one" }`)
		writeFile(t, dir, "b.hcl", `plan { goal = "two" }`)
		_, err := Load(context.Background(), dir)
		require.ErrorContains(t, err, "duplicate plan block")
	})
}
