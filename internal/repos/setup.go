package repos

import (
	"context"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/types"
)

type SetupRepo interface {
	EnsureSchema(ctx context.Context)
	ClearAllData(ctx context.Context) error
	Statistics(ctx context.Context) (*types.DatabaseStatistics, error)
}

type setupRepo struct {
	db  GraphStore
	log *logger.Logger
}

func NewSetupRepo(db GraphStore, baseLog *logger.Logger) SetupRepo {
	return &setupRepo{db: db, log: baseLog.With("repo", "SetupRepo")}
}

// Ordered list of schema declarations. Each one is individually idempotent
// (IF NOT EXISTS) so the whole set is safe to run on every process start.
var constraintsAndIndexes = []string{
	"CREATE CONSTRAINT student_id_unique IF NOT EXISTS FOR (s:Student) REQUIRE s.student_id IS UNIQUE",
	"CREATE CONSTRAINT question_id_unique IF NOT EXISTS FOR (q:Question) REQUIRE q.id IS UNIQUE",
	"CREATE CONSTRAINT concept_name_unique IF NOT EXISTS FOR (c:Concept) REQUIRE c.name IS UNIQUE",
	"CREATE CONSTRAINT subconcept_name_unique IF NOT EXISTS FOR (sc:SubConcept) REQUIRE sc.name IS UNIQUE",
	"CREATE CONSTRAINT solution_approach_name_unique IF NOT EXISTS FOR (sa:SolutionApproach) REQUIRE sa.name IS UNIQUE",

	"CREATE INDEX question_difficulty_index IF NOT EXISTS FOR (q:Question) ON (q.difficulty)",
	"CREATE INDEX question_step_index IF NOT EXISTS FOR (q:Question) ON (q.step_number, q.sub_step_number, q.sequence_number)",
	"CREATE INDEX student_last_active_index IF NOT EXISTS FOR (s:Student) ON (s.last_active)",
}

// EnsureSchema is best-effort per statement: a store that rejects one
// declaration (restricted user, unsupported constraint type) still gets the
// rest.
func (r *setupRepo) EnsureSchema(ctx context.Context) {
	r.log.Info("Setting up database constraints and indexes...")
	for _, query := range constraintsAndIndexes {
		if err := r.db.RunWrite(ctx, query, nil); err != nil {
			r.log.Warn("Could not execute setup query (continuing)", "query", query, "error", err)
			continue
		}
		r.log.Debug("Schema statement applied", "query", query)
	}
}

func (r *setupRepo) ClearAllData(ctx context.Context) error {
	r.log.Warn("Clearing all data from the database...")
	if err := r.db.RunWrite(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
		return err
	}
	r.log.Info("Database cleared")
	return nil
}

func (r *setupRepo) Statistics(ctx context.Context) (*types.DatabaseStatistics, error) {
	nodeRows, err := r.db.RunRead(ctx, `
		MATCH (n)
		WITH labels(n) AS nodeLabels
		UNWIND nodeLabels AS label
		RETURN label, count(*) AS count
		ORDER BY count DESC`, nil)
	if err != nil {
		return nil, err
	}

	relRows, err := r.db.RunRead(ctx, `
		MATCH ()-[r]->()
		RETURN type(r) AS relationship_type, count(r) AS count
		ORDER BY count DESC`, nil)
	if err != nil {
		return nil, err
	}

	stats := &types.DatabaseStatistics{
		Nodes:         make(map[string]int64, len(nodeRows)),
		Relationships: make(map[string]int64, len(relRows)),
	}
	for _, row := range nodeRows {
		stats.Nodes[stringValue(row["label"])] = intValue(row["count"])
	}
	for _, row := range relRows {
		stats.Relationships[stringValue(row["relationship_type"])] = intValue(row["count"])
	}
	return stats, nil
}
