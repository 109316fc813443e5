package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAllocation_Satisfied(t *testing.T) {
	t.Parallel()

	raw := `**Satisfaction Decision**: True
**Reasoning**: The answer fully covers the task input.`

	res, err := ParseAllocation(raw)
	require.NoError(t, err)
	assert.True(t, res.Satisfied)
	assert.Equal(t, "The answer fully covers the task input.", res.Reasoning)
	assert.Empty(t, res.Mode)
	assert.Empty(t, res.Subtasks)
}

func TestParseAllocation_SequentialDecomposition(t *testing.T) {
	t.Parallel()

	raw := `**Satisfaction Decision**: False
**Reasoning**: The task is too broad for a single answer.
**Decomposition Mode**: sequential
- **Sub-task 1**:
  - **Description**: Gather the raw data.
  - **Name**: gather_data
- **Sub-task 2**:
  - **Description**: Summarize the gathered data.
  - **Name**: summarize_data`

	res, err := ParseAllocation(raw)
	require.NoError(t, err)
	assert.False(t, res.Satisfied)
	assert.Equal(t, ModeSequential, res.Mode)
	require.Len(t, res.Subtasks, 2)
	assert.Equal(t, Subtask{Order: 1, Description: "Gather the raw data.", Name: "gather_data"}, res.Subtasks[0])
	assert.Equal(t, Subtask{Order: 2, Description: "Summarize the gathered data.", Name: "summarize_data"}, res.Subtasks[1])
}

func TestParseAllocation_ParallelDecomposition(t *testing.T) {
	t.Parallel()

	raw := `**Satisfaction Decision**: False
**Reasoning**: Independent angles can be explored separately.
**Decomposition Mode**: parallel
- **Sub-task 1**:
  - **Description**: Research option A.
  - **Name**: research_a
- **Sub-task 2**:
  - **Description**: Research option B.
  - **Name**: research_b`

	res, err := ParseAllocation(raw)
	require.NoError(t, err)
	assert.Equal(t, ModeParallel, res.Mode)
	require.Len(t, res.Subtasks, 2)
	assert.Equal(t, "research_b", res.Subtasks[1].Name)
}

func TestParseAllocation_SchemaViolations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		raw   string
		field string
	}{
		{
			name:  "no satisfaction line",
			raw:   "The task looks fine to me.",
			field: "satisfaction decision",
		},
		{
			name:  "missing reasoning",
			raw:   "**Satisfaction Decision**: True",
			field: "reasoning",
		},
		{
			name: "unsatisfied without mode",
			raw: `**Satisfaction Decision**: False
**Reasoning**: Needs splitting.`,
			field: "decomposition mode",
		},
		{
			name: "unknown mode word",
			raw: `**Satisfaction Decision**: False
**Reasoning**: Needs splitting.
**Decomposition Mode**: sideways`,
			field: "decomposition mode",
		},
		{
			name: "unsatisfied without subtasks",
			raw: `**Satisfaction Decision**: False
**Reasoning**: Needs splitting.
**Decomposition Mode**: sequential`,
			field: "sub-tasks",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseAllocation(tc.raw)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.field, parseErr.Field)
		})
	}
}
