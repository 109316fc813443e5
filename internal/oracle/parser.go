package oracle

import (
	"fmt"
	"regexp"
	"strconv"
)

// ParseError reports allocator text that does not match the expected
// markdown schema. It belongs to the collaborator layer: the graph engine
// only ever consumes already-structured AllocationResult values.
type ParseError struct {
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("allocator reply: missing or malformed %s", e.Field)
}

// The allocator replies in a fixed markdown-like schema:
//
//	**Satisfaction Decision**: True|False
//	**Reasoning**: <text>
//	**Decomposition Mode**: <word>            (unsatisfied only)
//	- **Sub-task <n>**:                        (repeated, unsatisfied only)
//	  - **Description**: <text>
//	  - **Name**: <text>
var (
	satisfactionRe = regexp.MustCompile(`\*\*Satisfaction Decision\*\*: (True|False)`)
	reasoningRe    = regexp.MustCompile(`\*\*Reasoning\*\*: (.+)`)
	modeRe         = regexp.MustCompile(`\*\*Decomposition Mode\*\*: (\w+)`)
	subtaskRe      = regexp.MustCompile(`- \*\*Sub-task (\d+)\*\*:\n\s+- \*\*Description\*\*: (.+)\n\s+- \*\*Name\*\*: (.+)`)
)

// ParseAllocation turns the allocator's free-form reply into a structured
// result, failing with *ParseError on any deviation from the schema.
func ParseAllocation(raw string) (AllocationResult, error) {
	var res AllocationResult

	m := satisfactionRe.FindStringSubmatch(raw)
	if m == nil {
		return res, &ParseError{Field: "satisfaction decision"}
	}
	res.Satisfied = m[1] == "True"

	m = reasoningRe.FindStringSubmatch(raw)
	if m == nil {
		return res, &ParseError{Field: "reasoning"}
	}
	res.Reasoning = m[1]

	if res.Satisfied {
		return res, nil
	}

	m = modeRe.FindStringSubmatch(raw)
	if m == nil {
		return res, &ParseError{Field: "decomposition mode"}
	}
	switch Mode(m[1]) {
	case ModeSequential, ModeParallel:
		res.Mode = Mode(m[1])
	default:
		return res, &ParseError{Field: "decomposition mode"}
	}

	for _, sm := range subtaskRe.FindAllStringSubmatch(raw, -1) {
		order, err := strconv.Atoi(sm[1])
		if err != nil {
			return res, &ParseError{Field: "sub-task number"}
		}
		res.Subtasks = append(res.Subtasks, Subtask{
			Order:       order,
			Description: sm[2],
			Name:        sm[3],
		})
	}
	if len(res.Subtasks) == 0 {
		return res, &ParseError{Field: "sub-tasks"}
	}

	return res, nil
}
