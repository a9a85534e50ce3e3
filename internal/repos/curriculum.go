package repos

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/types"
)

// CurriculumRepo applies one curriculum item to the graph inside a single
// write transaction. An error on any step rolls the whole item back; the
// caller decides what to do with the failure.
type CurriculumRepo interface {
	UpsertQuestion(ctx context.Context, item types.CurriculumItem) error
}

type curriculumRepo struct {
	db  GraphStore
	log *logger.Logger
}

func NewCurriculumRepo(db GraphStore, baseLog *logger.Logger) CurriculumRepo {
	return &curriculumRepo{db: db, log: baseLog.With("repo", "CurriculumRepo")}
}

func (r *curriculumRepo) UpsertQuestion(ctx context.Context, item types.CurriculumItem) error {
	err := r.db.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) error {
		// The question node goes first: every edge below anchors on it.
		if err := r.upsertQuestionNode(ctx, tx, item); err != nil {
			return fmt.Errorf("upsert question node: %w", err)
		}
		if err := r.linkConcepts(ctx, tx, item.ID, item.StandardConcepts); err != nil {
			return fmt.Errorf("link standard concepts: %w", err)
		}
		if err := r.linkSubConcepts(ctx, tx, item.ID, item.SubConcepts); err != nil {
			return fmt.Errorf("link sub concepts: %w", err)
		}
		if err := r.linkSolutionApproaches(ctx, tx, item.ID, item.SolutionApproaches); err != nil {
			return fmt.Errorf("link solution approaches: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Error("Failed to upsert question", "question_id", item.ID, "error", err)
		return err
	}
	r.log.Debug("Upserted question", "question_id", item.ID)
	return nil
}

func (r *curriculumRepo) upsertQuestionNode(ctx context.Context, tx neo4j.ManagedTransaction, item types.CurriculumItem) error {
	query := `
MERGE (q:Question {id: $id})
ON CREATE SET q.created_at = datetime()
SET q.title = $title,
    q.content = $content,
    q.difficulty = $difficulty,
    q.step_number = $step_number,
    q.sub_step_number = $sub_step_number,
    q.sequence_number = $sequence_number,
    q.standard_concepts = $standard_concepts,
    q.sub_concepts = $sub_concepts,
    q.updated_at = datetime()
`
	params := map[string]any{
		"id":                item.ID,
		"title":             item.QuestionTitle,
		"content":           item.Question,
		"difficulty":        item.Difficulty,
		"step_number":       item.StepNo,
		"sub_step_number":   item.SubStepNo,
		"sequence_number":   item.SlNo,
		"standard_concepts": cleanNames(item.StandardConcepts),
		"sub_concepts":      cleanNames(item.SubConcepts),
	}
	return runInTx(ctx, tx, query, params)
}

func (r *curriculumRepo) linkConcepts(ctx context.Context, tx neo4j.ManagedTransaction, questionID string, names []string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := runInTx(ctx, tx, `
MERGE (c:Concept {name: $name})
SET c.created_at = coalesce(c.created_at, datetime()),
    c.updated_at = datetime()
`, map[string]any{"name": name}); err != nil {
			return err
		}
		if err := runInTx(ctx, tx, `
MATCH (q:Question {id: $question_id})
MATCH (c:Concept {name: $name})
MERGE (q)-[:INVOLVES_CONCEPT]->(c)
`, map[string]any{"question_id": questionID, "name": name}); err != nil {
			return err
		}
	}
	return nil
}

func (r *curriculumRepo) linkSubConcepts(ctx context.Context, tx neo4j.ManagedTransaction, questionID string, names []string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := runInTx(ctx, tx, `
MERGE (sc:SubConcept {name: $name})
SET sc.created_at = coalesce(sc.created_at, datetime()),
    sc.updated_at = datetime()
`, map[string]any{"name": name}); err != nil {
			return err
		}
		if err := runInTx(ctx, tx, `
MATCH (q:Question {id: $question_id})
MATCH (sc:SubConcept {name: $name})
MERGE (q)-[:INVOLVES_SUBCONCEPT]->(sc)
`, map[string]any{"question_id": questionID, "name": name}); err != nil {
			return err
		}
	}
	return nil
}

// Approach nodes are shared by name across questions; the explanation is
// overwritten on every re-ingestion, so the last ingested item wins.
func (r *curriculumRepo) linkSolutionApproaches(ctx context.Context, tx neo4j.ManagedTransaction, questionID string, approaches []types.SolutionApproach) error {
	for _, approach := range approaches {
		name := strings.TrimSpace(approach.Name)
		if name == "" {
			continue
		}
		if err := runInTx(ctx, tx, `
MERGE (sa:SolutionApproach {name: $name})
SET sa.explanation = $explanation,
    sa.created_at = coalesce(sa.created_at, datetime()),
    sa.updated_at = datetime()
`, map[string]any{"name": name, "explanation": strings.TrimSpace(approach.Explanation)}); err != nil {
			return err
		}
		if err := runInTx(ctx, tx, `
MATCH (q:Question {id: $question_id})
MATCH (sa:SolutionApproach {name: $name})
MERGE (q)-[:HAS_SOLUTION_APPROACH]->(sa)
`, map[string]any{"question_id": questionID, "name": name}); err != nil {
			return err
		}
	}
	return nil
}

func runInTx(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]any) error {
	res, err := tx.Run(ctx, query, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}
