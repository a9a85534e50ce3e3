package repos

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphStore is the db.Neo4jService surface the repos consume. Narrowing it
// to an interface keeps the repos testable without a live store.
type GraphStore interface {
	ExecuteWrite(ctx context.Context, work func(ctx context.Context, tx neo4j.ManagedTransaction) error) error
	RunWrite(ctx context.Context, query string, params map[string]any) error
	RunRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}
