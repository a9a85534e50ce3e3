package repos

import (
	"time"

	"github.com/fastwise/tutr-backend/internal/types"
)

// Row values come back from the driver as any; these helpers normalize them
// at the repo boundary so nothing downstream sees untyped values.

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func intValue(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func timeValue(v any) *time.Time {
	t, ok := v.(time.Time)
	if !ok {
		return nil
	}
	return &t
}

func stringSliceValue(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// A missing or null approaches projection yields an empty slice, never an
// error.
func approachSliceValue(v any) []types.SolutionApproach {
	raw, ok := v.([]any)
	if !ok {
		return []types.SolutionApproach{}
	}
	out := make([]types.SolutionApproach, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, types.SolutionApproach{
			Name:        stringValue(m["name"]),
			Explanation: stringValue(m["explanation"]),
		})
	}
	return out
}

func buildQuestionFromRow(row map[string]any) *types.Question {
	return &types.Question{
		ID:                 stringValue(row["id"]),
		Title:              stringValue(row["title"]),
		Content:            stringValue(row["content"]),
		Difficulty:         stringValue(row["difficulty"]),
		StepNumber:         intValue(row["step_number"]),
		SubStepNumber:      intValue(row["sub_step_number"]),
		SequenceNumber:     intValue(row["sequence_number"]),
		StandardConcepts:   stringSliceValue(row["standard_concepts"]),
		SubConcepts:        stringSliceValue(row["sub_concepts"]),
		SolutionApproaches: approachSliceValue(row["solution_approaches"]),
	}
}
