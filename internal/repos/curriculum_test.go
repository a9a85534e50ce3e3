package repos

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

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

type stubResult struct {
	neo4j.ResultWithContext
}

func (stubResult) Consume(ctx context.Context) (neo4j.ResultSummary, error) {
	return nil, nil
}

type txCall struct {
	query  string
	params map[string]any
}

// recordingTx captures every statement run inside a managed transaction and
// can fail the first statement matching failOn.
type recordingTx struct {
	neo4j.ManagedTransaction

	calls  []txCall
	failOn string
}

func (f *recordingTx) Run(ctx context.Context, cypher string, params map[string]any) (neo4j.ResultWithContext, error) {
	if f.failOn != "" && strings.Contains(cypher, f.failOn) {
		return nil, errors.New("statement rejected")
	}
	f.calls = append(f.calls, txCall{query: cypher, params: params})
	return stubResult{}, nil
}

type fakeGraphStore struct {
	tx       *recordingTx
	writeErr error
}

func (f *fakeGraphStore) ExecuteWrite(ctx context.Context, work func(ctx context.Context, tx neo4j.ManagedTransaction) error) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return work(ctx, f.tx)
}

func (f *fakeGraphStore) RunWrite(ctx context.Context, query string, params map[string]any) error {
	return nil
}

func (f *fakeGraphStore) RunRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	return nil, nil
}

func fullItem() types.CurriculumItem {
	return types.CurriculumItem{
		ID:               "q1",
		QuestionTitle:    "Two Sum",
		Question:         "Find two numbers adding to a target.",
		Difficulty:       "easy",
		StepNo:           1,
		SubStepNo:        2,
		SlNo:             3,
		StandardConcepts: []string{"Arrays"},
		SubConcepts:      []string{"Hash Maps"},
		SolutionApproaches: []types.SolutionApproach{
			{Name: "Brute Force", Explanation: "Try every pair."},
		},
	}
}

func TestUpsertQuestion_StepsRunInOrder(t *testing.T) {
	store := &fakeGraphStore{tx: &recordingTx{}}
	repo := NewCurriculumRepo(store, newTestLogger(t))

	if err := repo.UpsertQuestion(context.Background(), fullItem()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{
		"MERGE (q:Question {id: $id})",
		"MERGE (c:Concept {name: $name})",
		"MERGE (q)-[:INVOLVES_CONCEPT]->(c)",
		"MERGE (sc:SubConcept {name: $name})",
		"MERGE (q)-[:INVOLVES_SUBCONCEPT]->(sc)",
		"MERGE (sa:SolutionApproach {name: $name})",
		"MERGE (q)-[:HAS_SOLUTION_APPROACH]->(sa)",
	}
	if len(store.tx.calls) != len(wantOrder) {
		t.Fatalf("expected %d statements, got %d", len(wantOrder), len(store.tx.calls))
	}
	for i, fragment := range wantOrder {
		if !strings.Contains(store.tx.calls[i].query, fragment) {
			t.Fatalf("statement %d: expected %q, got:\n%s", i, fragment, store.tx.calls[i].query)
		}
	}
}

func TestUpsertQuestion_NodeParamsCarryCleanedLists(t *testing.T) {
	store := &fakeGraphStore{tx: &recordingTx{}}
	repo := NewCurriculumRepo(store, newTestLogger(t))

	item := fullItem()
	item.StandardConcepts = []string{" Arrays ", "", "Sorting"}
	if err := repo.UpsertQuestion(context.Background(), item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := store.tx.calls[0].params
	if params["id"] != "q1" || params["title"] != "Two Sum" {
		t.Fatalf("unexpected node params: %+v", params)
	}
	concepts, ok := params["standard_concepts"].([]string)
	if !ok || len(concepts) != 2 || concepts[0] != "Arrays" || concepts[1] != "Sorting" {
		t.Fatalf("expected trimmed non-blank concepts, got %v", params["standard_concepts"])
	}
}

func TestUpsertQuestion_BlankNamesProduceNoEdges(t *testing.T) {
	store := &fakeGraphStore{tx: &recordingTx{}}
	repo := NewCurriculumRepo(store, newTestLogger(t))

	item := fullItem()
	item.StandardConcepts = []string{"", "   "}
	item.SubConcepts = []string{" "}
	item.SolutionApproaches = []types.SolutionApproach{{Name: "  ", Explanation: "x"}}

	if err := repo.UpsertQuestion(context.Background(), item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.tx.calls) != 1 {
		t.Fatalf("expected only the question node statement, got %d statements", len(store.tx.calls))
	}
	if !strings.Contains(store.tx.calls[0].query, "MERGE (q:Question") {
		t.Fatalf("unexpected statement: %s", store.tx.calls[0].query)
	}
}

func TestUpsertQuestion_FailedStepStopsLaterSteps(t *testing.T) {
	store := &fakeGraphStore{tx: &recordingTx{failOn: "MERGE (c:Concept"}}
	repo := NewCurriculumRepo(store, newTestLogger(t))

	err := repo.UpsertQuestion(context.Background(), fullItem())
	if err == nil {
		t.Fatal("expected the concept step failure to surface")
	}
	if !strings.Contains(err.Error(), "link standard concepts") {
		t.Fatalf("expected the failing step named, got %v", err)
	}
	for _, call := range store.tx.calls {
		if strings.Contains(call.query, "SubConcept") || strings.Contains(call.query, "SolutionApproach") {
			t.Fatalf("later step ran after a failed step: %s", call.query)
		}
	}
}

func TestUpsertQuestion_DeadStoreSurfaces(t *testing.T) {
	store := &fakeGraphStore{writeErr: types.ErrNotConnected}
	repo := NewCurriculumRepo(store, newTestLogger(t))

	err := repo.UpsertQuestion(context.Background(), fullItem())
	if !errors.Is(err, types.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}
