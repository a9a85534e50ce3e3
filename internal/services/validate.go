package services

import (
	"fmt"
	"strings"

	"github.com/fastwise/tutr-backend/internal/types"
)

var requiredItemFields = []string{
	"id", "question_title", "question", "difficulty",
	"step_no", "sub_step_no", "sl_no",
}

var numericItemFields = []string{"step_no", "sub_step_no", "sl_no"}

var listItemFields = []string{"standard_concepts", "sub_concepts", "solution_approaches"}

// ItemID pulls the identifier out of a raw item for reporting, with a
// placeholder for items that do not even carry one.
func ItemID(item map[string]any) string {
	if id, ok := item["id"].(string); ok && strings.TrimSpace(id) != "" {
		return id
	}
	return "N/A"
}

// ValidateItem checks that every required field is present. Pure, no I/O.
func ValidateItem(item map[string]any) *types.ValidationError {
	var missing []string
	for _, field := range requiredItemFields {
		if _, ok := item[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &types.ValidationError{ItemID: ItemID(item), MissingFields: missing}
	}
	return nil
}

// ValidateItemFields applies the deep field-level rules on top of presence.
func ValidateItemFields(item map[string]any) *types.ValidationError {
	fail := func(format string, args ...any) *types.ValidationError {
		return &types.ValidationError{ItemID: ItemID(item), Reason: fmt.Sprintf(format, args...)}
	}

	id, ok := item["id"].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return fail("id cannot be empty")
	}

	for _, field := range numericItemFields {
		n, ok := numberValue(item[field])
		if !ok || n < 0 {
			return fail("field %s must be a non-negative number", field)
		}
		// JSON numbers arrive as float64; a fractional ordering value would
		// otherwise be silently truncated at decode.
		if n != float64(int64(n)) {
			return fail("field %s must be a whole number", field)
		}
	}

	for _, field := range []string{"question_title", "question"} {
		s, ok := item[field].(string)
		if !ok || strings.TrimSpace(s) == "" {
			return fail("field %s cannot be empty", field)
		}
	}

	for _, field := range listItemFields {
		raw, present := item[field]
		if !present {
			continue
		}
		if _, ok := raw.([]any); !ok {
			return fail("field %s must be a list", field)
		}
	}

	for _, field := range []string{"standard_concepts", "sub_concepts"} {
		entries, _ := item[field].([]any)
		for i, entry := range entries {
			if _, ok := entry.(string); !ok {
				return fail("field %s entry %d must be a string", field, i)
			}
		}
	}

	if raw, present := item["solution_approaches"]; present {
		approaches, _ := raw.([]any)
		for i, entry := range approaches {
			m, ok := entry.(map[string]any)
			if !ok {
				return fail("solution approach %d must be an object", i)
			}
			if _, ok := m["approach_name"]; !ok {
				return fail("solution approach %d missing 'approach_name'", i)
			}
		}
	}

	return nil
}

// DecodeItem maps a validated raw object into the typed record the graph
// layer consumes. Callers must run both validation passes first.
func DecodeItem(item map[string]any) types.CurriculumItem {
	decoded := types.CurriculumItem{
		ID:               strings.TrimSpace(stringField(item, "id")),
		QuestionTitle:    stringField(item, "question_title"),
		Question:         stringField(item, "question"),
		Difficulty:       stringField(item, "difficulty"),
		StepNo:           intField(item, "step_no"),
		SubStepNo:        intField(item, "sub_step_no"),
		SlNo:             intField(item, "sl_no"),
		StandardConcepts: stringListField(item, "standard_concepts"),
		SubConcepts:      stringListField(item, "sub_concepts"),
	}

	if raw, ok := item["solution_approaches"].([]any); ok {
		for _, entry := range raw {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			decoded.SolutionApproaches = append(decoded.SolutionApproaches, types.SolutionApproach{
				Name:        stringField(m, "approach_name"),
				Explanation: stringField(m, "explanation"),
			})
		}
	}

	return decoded
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func stringField(item map[string]any, field string) string {
	s, _ := item[field].(string)
	return s
}

func intField(item map[string]any, field string) int64 {
	n, _ := numberValue(item[field])
	return int64(n)
}

func stringListField(item map[string]any, field string) []string {
	raw, ok := item[field].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s, ok := entry.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
