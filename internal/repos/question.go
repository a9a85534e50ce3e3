package repos

import (
	"context"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/types"
)

// questionProjection is the flat field list every question read shares, plus
// a pattern comprehension for the nested approach pairs.
const questionProjection = `
RETURN q.id AS id, q.title AS title, q.content AS content,
       q.difficulty AS difficulty, q.step_number AS step_number,
       q.sub_step_number AS sub_step_number, q.sequence_number AS sequence_number,
       q.standard_concepts AS standard_concepts, q.sub_concepts AS sub_concepts,
       [(q)-[:HAS_SOLUTION_APPROACH]->(sa:SolutionApproach) | {name: sa.name, explanation: sa.explanation}] AS solution_approaches`

const curriculumOrder = `
ORDER BY q.step_number ASC, q.sub_step_number ASC, q.sequence_number ASC`

type QuestionRepo interface {
	FindUnmasteredForStudent(ctx context.Context, studentID string, limit int) ([]*types.Question, error)
	FindByConceptForStudent(ctx context.Context, studentID, conceptName string, limit int) ([]*types.Question, error)
	// FindByID returns (nil, nil) when no such question exists.
	FindByID(ctx context.Context, questionID string) (*types.Question, error)
	ListAll(ctx context.Context, limit int) ([]*types.Question, error)
}

type questionRepo struct {
	db  GraphStore
	log *logger.Logger
}

func NewQuestionRepo(db GraphStore, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) FindUnmasteredForStudent(ctx context.Context, studentID string, limit int) ([]*types.Question, error) {
	query := `
MATCH (q:Question)
WHERE NOT EXISTS {
    MATCH (s:Student {student_id: $student_id})-[:MASTERED]->(q)
}` + questionProjection + curriculumOrder + `
LIMIT $limit`

	r.log.Debug("Finding unmastered questions", "student_id", studentID, "limit", limit)
	rows, err := r.db.RunRead(ctx, query, map[string]any{
		"student_id": studentID,
		"limit":      int64(limit),
	})
	if err != nil {
		return nil, err
	}
	return questionsFromRows(rows), nil
}

func (r *questionRepo) FindByConceptForStudent(ctx context.Context, studentID, conceptName string, limit int) ([]*types.Question, error) {
	query := `
MATCH (q:Question)
WHERE ($concept_name IN q.standard_concepts OR $concept_name IN q.sub_concepts)
AND NOT EXISTS {
    MATCH (s:Student {student_id: $student_id})-[:MASTERED]->(q)
}` + questionProjection + curriculumOrder + `
LIMIT $limit`

	r.log.Debug("Finding questions by concept", "student_id", studentID, "concept", conceptName, "limit", limit)
	rows, err := r.db.RunRead(ctx, query, map[string]any{
		"student_id":   studentID,
		"concept_name": conceptName,
		"limit":        int64(limit),
	})
	if err != nil {
		return nil, err
	}
	return questionsFromRows(rows), nil
}

func (r *questionRepo) FindByID(ctx context.Context, questionID string) (*types.Question, error) {
	query := `
MATCH (q:Question {id: $question_id})` + questionProjection

	rows, err := r.db.RunRead(ctx, query, map[string]any{"question_id": questionID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return buildQuestionFromRow(rows[0]), nil
}

func (r *questionRepo) ListAll(ctx context.Context, limit int) ([]*types.Question, error) {
	query := `
MATCH (q:Question)` + questionProjection + curriculumOrder
	params := map[string]any{}
	if limit > 0 {
		query += `
LIMIT $limit`
		params["limit"] = int64(limit)
	}

	rows, err := r.db.RunRead(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return questionsFromRows(rows), nil
}

func questionsFromRows(rows []map[string]any) []*types.Question {
	out := make([]*types.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, buildQuestionFromRow(row))
	}
	return out
}
