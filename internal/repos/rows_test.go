package repos

import (
	"testing"
	"time"
)

func TestBuildQuestionFromRow_FullProjection(t *testing.T) {
	row := map[string]any{
		"id":                "q1",
		"title":             "Two Sum",
		"content":           "Find two numbers.",
		"difficulty":        "easy",
		"step_number":       int64(1),
		"sub_step_number":   int64(2),
		"sequence_number":   int64(3),
		"standard_concepts": []any{"arrays", "hashing"},
		"sub_concepts":      []any{"two pointers"},
		"solution_approaches": []any{
			map[string]any{"name": "brute force", "explanation": "nested loops"},
		},
	}

	q := buildQuestionFromRow(row)
	if q.ID != "q1" || q.Title != "Two Sum" || q.Difficulty != "easy" {
		t.Fatalf("unexpected scalar fields: %+v", q)
	}
	if q.StepNumber != 1 || q.SubStepNumber != 2 || q.SequenceNumber != 3 {
		t.Fatalf("unexpected ordering numbers: %d/%d/%d", q.StepNumber, q.SubStepNumber, q.SequenceNumber)
	}
	if len(q.StandardConcepts) != 2 || q.StandardConcepts[1] != "hashing" {
		t.Fatalf("unexpected standard concepts: %v", q.StandardConcepts)
	}
	if len(q.SolutionApproaches) != 1 || q.SolutionApproaches[0].Name != "brute force" {
		t.Fatalf("unexpected approaches: %+v", q.SolutionApproaches)
	}
}

func TestBuildQuestionFromRow_MissingProjectionsYieldEmptySlices(t *testing.T) {
	q := buildQuestionFromRow(map[string]any{"id": "q1"})
	if q.StandardConcepts == nil || len(q.StandardConcepts) != 0 {
		t.Fatalf("expected empty standard concepts, got %v", q.StandardConcepts)
	}
	if q.SolutionApproaches == nil || len(q.SolutionApproaches) != 0 {
		t.Fatalf("expected empty approaches, got %v", q.SolutionApproaches)
	}
}

func TestBuildQuestionFromRow_NullApproachEntriesAreSkipped(t *testing.T) {
	row := map[string]any{
		"id":                  "q1",
		"solution_approaches": []any{nil, map[string]any{"name": "dp", "explanation": "memoize"}},
	}
	q := buildQuestionFromRow(row)
	if len(q.SolutionApproaches) != 1 || q.SolutionApproaches[0].Name != "dp" {
		t.Fatalf("unexpected approaches: %+v", q.SolutionApproaches)
	}
}

func TestIntValue_AcceptsDriverNumericShapes(t *testing.T) {
	if got := intValue(int64(7)); got != 7 {
		t.Fatalf("int64: got %d", got)
	}
	if got := intValue(7); got != 7 {
		t.Fatalf("int: got %d", got)
	}
	if got := intValue(float64(7)); got != 7 {
		t.Fatalf("float64: got %d", got)
	}
	if got := intValue("7"); got != 0 {
		t.Fatalf("string must map to zero, got %d", got)
	}
}

func TestTimeValue(t *testing.T) {
	now := time.Now()
	if got := timeValue(now); got == nil || !got.Equal(now) {
		t.Fatalf("expected %v, got %v", now, got)
	}
	if got := timeValue(nil); got != nil {
		t.Fatalf("expected nil for nil input, got %v", got)
	}
}

func TestCleanNames(t *testing.T) {
	got := cleanNames([]string{" arrays ", "", "  ", "hashing"})
	if len(got) != 2 || got[0] != "arrays" || got[1] != "hashing" {
		t.Fatalf("unexpected cleaned names: %v", got)
	}
}
