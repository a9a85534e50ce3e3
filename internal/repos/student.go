package repos

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/types"
)

type StudentRepo interface {
	Upsert(ctx context.Context, student types.Student) error
	// FindByID returns (nil, nil) when no such student exists.
	FindByID(ctx context.Context, studentID string) (*types.Student, error)
	MarkAttempted(ctx context.Context, studentID, questionID string) error
	MarkMastered(ctx context.Context, studentID, questionID string) error
	MarkSubConceptsMastered(ctx context.Context, studentID, questionID string) error
	// CompleteQuestion runs attempt, mastery and sub-concept propagation in
	// one transaction: either all of them land or none do.
	CompleteQuestion(ctx context.Context, studentID, questionID string, mastered bool) error
	ProgressSummary(ctx context.Context, studentID string) (*types.StudentProgress, error)
}

type studentRepo struct {
	db  GraphStore
	log *logger.Logger
}

func NewStudentRepo(db GraphStore, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

func (r *studentRepo) Upsert(ctx context.Context, student types.Student) error {
	query := `
MERGE (s:Student {student_id: $student_id})
ON CREATE SET s.created_at = datetime()
SET s.name = $name,
    s.email = $email,
    s.last_active = datetime()
`
	params := map[string]any{
		"student_id": student.StudentID,
		"name":       student.Name,
		"email":      student.Email,
	}
	r.log.Info("Creating/updating student", "student_id", student.StudentID)
	return r.db.RunWrite(ctx, query, params)
}

func (r *studentRepo) FindByID(ctx context.Context, studentID string) (*types.Student, error) {
	query := `
MATCH (s:Student {student_id: $student_id})
RETURN s.student_id AS student_id, s.name AS name, s.email AS email,
       s.created_at AS created_at, s.last_active AS last_active
`
	rows, err := r.db.RunRead(ctx, query, map[string]any{"student_id": studentID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	row := rows[0]
	return &types.Student{
		StudentID:  stringValue(row["student_id"]),
		Name:       stringValue(row["name"]),
		Email:      stringValue(row["email"]),
		CreatedAt:  timeValue(row["created_at"]),
		LastActive: timeValue(row["last_active"]),
	}, nil
}

const markAttemptedQuery = `
MATCH (s:Student {student_id: $student_id})
MATCH (q:Question {id: $question_id})
MERGE (s)-[r:ATTEMPTED]->(q)
SET r.timestamp = datetime(), s.last_active = datetime()
`

const markMasteredQuery = `
MATCH (s:Student {student_id: $student_id})
MATCH (q:Question {id: $question_id})
MERGE (s)-[r:MASTERED]->(q)
SET r.timestamp = datetime(), s.last_active = datetime()
`

// Sub-concept names with no matching node are skipped by the MATCH; that is
// deliberate, mastery only propagates to sub-concepts the ingest created.
const markSubConceptsMasteredQuery = `
MATCH (s:Student {student_id: $student_id})
MATCH (q:Question {id: $question_id})
WITH s, q.sub_concepts AS subconcept_names
UNWIND subconcept_names AS subconcept_name
MATCH (sc:SubConcept {name: subconcept_name})
MERGE (s)-[r:MASTERED]->(sc)
SET r.timestamp = datetime(), s.last_active = datetime()
`

func (r *studentRepo) MarkAttempted(ctx context.Context, studentID, questionID string) error {
	r.log.Info("Marking question attempted", "student_id", studentID, "question_id", questionID)
	return r.db.RunWrite(ctx, markAttemptedQuery, progressParams(studentID, questionID))
}

func (r *studentRepo) MarkMastered(ctx context.Context, studentID, questionID string) error {
	r.log.Info("Marking question mastered", "student_id", studentID, "question_id", questionID)
	return r.db.RunWrite(ctx, markMasteredQuery, progressParams(studentID, questionID))
}

func (r *studentRepo) MarkSubConceptsMastered(ctx context.Context, studentID, questionID string) error {
	r.log.Info("Marking sub-concepts mastered", "student_id", studentID, "question_id", questionID)
	return r.db.RunWrite(ctx, markSubConceptsMasteredQuery, progressParams(studentID, questionID))
}

func (r *studentRepo) CompleteQuestion(ctx context.Context, studentID, questionID string, mastered bool) error {
	r.log.Info("Recording question completion", "student_id", studentID, "question_id", questionID, "mastered", mastered)
	params := progressParams(studentID, questionID)
	err := r.db.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) error {
		if err := runInTx(ctx, tx, markAttemptedQuery, params); err != nil {
			return fmt.Errorf("mark attempted: %w", err)
		}
		if !mastered {
			return nil
		}
		if err := runInTx(ctx, tx, markMasteredQuery, params); err != nil {
			return fmt.Errorf("mark mastered: %w", err)
		}
		if err := runInTx(ctx, tx, markSubConceptsMasteredQuery, params); err != nil {
			return fmt.Errorf("mark sub-concepts mastered: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Error("Failed to record completion", "student_id", studentID, "question_id", questionID, "error", err)
	}
	return err
}

func (r *studentRepo) ProgressSummary(ctx context.Context, studentID string) (*types.StudentProgress, error) {
	query := `
MATCH (s:Student {student_id: $student_id})
OPTIONAL MATCH (s)-[:ATTEMPTED]->(attempted:Question)
OPTIONAL MATCH (s)-[:MASTERED]->(mastered:Question)
OPTIONAL MATCH (s)-[:MASTERED]->(mastered_sub:SubConcept)
RETURN s.student_id AS student_id,
       count(DISTINCT attempted) AS attempted_count,
       count(DISTINCT mastered) AS mastered_count,
       count(DISTINCT mastered_sub) AS mastered_concepts_count,
       [x IN collect(DISTINCT attempted.id) WHERE x IS NOT NULL] AS attempted_questions,
       [x IN collect(DISTINCT mastered.id) WHERE x IS NOT NULL] AS mastered_questions
`
	rows, err := r.db.RunRead(ctx, query, map[string]any{"student_id": studentID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	row := rows[0]
	return &types.StudentProgress{
		StudentID:             stringValue(row["student_id"]),
		AttemptedCount:        intValue(row["attempted_count"]),
		MasteredCount:         intValue(row["mastered_count"]),
		MasteredConceptsCount: intValue(row["mastered_concepts_count"]),
		AttemptedQuestionIDs:  stringSliceValue(row["attempted_questions"]),
		MasteredQuestionIDs:   stringSliceValue(row["mastered_questions"]),
	}, nil
}

func progressParams(studentID, questionID string) map[string]any {
	return map[string]any{
		"student_id":  studentID,
		"question_id": questionID,
	}
}
