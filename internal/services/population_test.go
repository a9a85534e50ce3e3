package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeUpserter struct {
	upserted []string
	failIDs  map[string]error
}

func newFakeUpserter() *fakeUpserter {
	return &fakeUpserter{failIDs: make(map[string]error)}
}

func (f *fakeUpserter) UpsertQuestion(_ context.Context, item types.CurriculumItem) error {
	if err, ok := f.failIDs[item.ID]; ok {
		return err
	}
	f.upserted = append(f.upserted, item.ID)
	return nil
}

func rawItem(id string) map[string]any {
	return map[string]any{
		"id":             id,
		"question_title": "T",
		"difficulty":     "easy",
		"question":       "B",
		"step_no":        float64(1),
		"sub_step_no":    float64(1),
		"sl_no":          float64(1),
		"sub_concepts":   []any{"c1"},
	}
}

func TestPopulateFromItems_SingleValidItem(t *testing.T) {
	upserter := newFakeUpserter()
	svc := NewPopulationService(upserter, nil, newTestLogger(t))

	report, err := svc.PopulateFromItems(context.Background(), []map[string]any{rawItem("q1")}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalItems != 1 || report.ProcessedItems != 1 || report.FailedItems != 0 || report.InvalidItems != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(upserter.upserted) != 1 || upserter.upserted[0] != "q1" {
		t.Fatalf("expected q1 upserted, got %v", upserter.upserted)
	}
	if report.RunID == "" {
		t.Fatal("expected a run id")
	}
}

func TestPopulateFromItems_InvalidItemsNeverReachTheGraph(t *testing.T) {
	upserter := newFakeUpserter()
	svc := NewPopulationService(upserter, nil, newTestLogger(t))

	missingTitle := rawItem("bad1")
	delete(missingTitle, "question_title")
	blankBody := rawItem("bad2")
	blankBody["question"] = "  "

	items := []map[string]any{rawItem("q1"), missingTitle, blankBody, rawItem("q2")}
	report, err := svc.PopulateFromItems(context.Background(), items, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalItems != 4 || report.ProcessedItems != 2 || report.InvalidItems != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.InvalidItemIDs) != 2 || report.InvalidItemIDs[0] != "bad1" || report.InvalidItemIDs[1] != "bad2" {
		t.Fatalf("unexpected invalid ids: %v", report.InvalidItemIDs)
	}
	for _, id := range upserter.upserted {
		if id == "bad1" || id == "bad2" {
			t.Fatalf("invalid item %s reached the upserter", id)
		}
	}
}

func TestPopulateFromItems_FailureIsIsolatedPerItem(t *testing.T) {
	upserter := newFakeUpserter()
	upserter.failIDs["q2"] = errors.New("constraint conflict")
	svc := NewPopulationService(upserter, nil, newTestLogger(t))

	items := []map[string]any{rawItem("q1"), rawItem("q2"), rawItem("q3")}
	report, err := svc.PopulateFromItems(context.Background(), items, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ProcessedItems != 2 || report.FailedItems != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.FailedItemIDs) != 1 || report.FailedItemIDs[0] != "q2" {
		t.Fatalf("expected exactly q2 failed, got %v", report.FailedItemIDs)
	}
	if len(upserter.upserted) != 2 || upserter.upserted[0] != "q1" || upserter.upserted[1] != "q3" {
		t.Fatalf("expected q1 and q3 processed in order, got %v", upserter.upserted)
	}
}

func TestPopulateFromItems_BatchingIsOnlyAGrouping(t *testing.T) {
	upserter := newFakeUpserter()
	svc := NewPopulationService(upserter, nil, newTestLogger(t))

	items := make([]map[string]any, 0, 5)
	for _, id := range []string{"q1", "q2", "q3", "q4", "q5"} {
		items = append(items, rawItem(id))
	}
	report, err := svc.PopulateFromItems(context.Background(), items, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ProcessedItems != 5 {
		t.Fatalf("expected all 5 processed, got %+v", report)
	}
	if len(upserter.upserted) != 5 {
		t.Fatalf("expected 5 upsert calls, got %d", len(upserter.upserted))
	}
}

func TestPopulateFromItems_DeadStoreAbortsTheRun(t *testing.T) {
	upserter := newFakeUpserter()
	upserter.failIDs["q1"] = types.ErrNotConnected
	svc := NewPopulationService(upserter, nil, newTestLogger(t))

	_, err := svc.PopulateFromItems(context.Background(), []map[string]any{rawItem("q1"), rawItem("q2")}, 0)
	if !errors.Is(err, types.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestPopulateFromFile_IngestsArrayOfObjects(t *testing.T) {
	upserter := newFakeUpserter()
	svc := NewPopulationService(upserter, nil, newTestLogger(t))

	path := writeTempFile(t, `[{"id":"q1","question_title":"T","question":"B","difficulty":"easy","step_no":1,"sub_step_no":1,"sl_no":1,"sub_concepts":["c1"]}]`)
	report, err := svc.PopulateFromFile(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalItems != 1 || report.ProcessedItems != 1 || report.FailedItems != 0 || report.InvalidItems != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(upserter.upserted) != 1 || upserter.upserted[0] != "q1" {
		t.Fatalf("expected q1 upserted, got %v", upserter.upserted)
	}
}

func TestPopulateFromFile_TopLevelObjectIsFatal(t *testing.T) {
	svc := NewPopulationService(newFakeUpserter(), nil, newTestLogger(t))

	path := writeTempFile(t, `{"id":"q1"}`)
	_, err := svc.PopulateFromFile(context.Background(), path, 0)
	if err == nil {
		t.Fatal("expected a fatal source-format error")
	}
	if !types.IsValidationError(err) {
		t.Fatalf("expected a validation error, got %T: %v", err, err)
	}
}

func TestPopulateFromFile_MissingFileIsFatal(t *testing.T) {
	svc := NewPopulationService(newFakeUpserter(), nil, newTestLogger(t))

	_, err := svc.PopulateFromFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"), 0)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestValidateFile_ReportsWithoutTouchingTheStore(t *testing.T) {
	// nil upserter: any store access would panic.
	svc := NewPopulationService(nil, nil, newTestLogger(t))

	path := writeTempFile(t, `[
		{"id":"q1","question_title":"T","question":"B","difficulty":"easy","step_no":1,"sub_step_no":1,"sl_no":1},
		{"id":"q2","question_title":"  ","question":"B","difficulty":"easy","step_no":1,"sub_step_no":1,"sl_no":2}
	]`)
	report, err := svc.ValidateFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalItems != 2 || report.ValidItems != 1 || report.InvalidItems != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.InvalidItemIDs) != 1 || report.InvalidItemIDs[0] != "q2" {
		t.Fatalf("expected q2 invalid, got %v", report.InvalidItemIDs)
	}
}
