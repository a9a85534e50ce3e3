package db

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/types"
	"github.com/fastwise/tutr-backend/internal/utils"
)

// Neo4jService owns the process-wide driver. It is constructed once at
// startup and closed once at shutdown; every operation gets its own session.
type Neo4jService struct {
	driver   neo4j.DriverWithContext
	database string
	log      *logger.Logger
}

func NewNeo4jService(log *logger.Logger) (*Neo4jService, error) {
	serviceLog := log.With("service", "Neo4jService")

	uri := utils.GetEnv("NEO4J_URI", "bolt://localhost:7687", log)
	user := utils.GetEnv("NEO4J_USER", "neo4j", log)
	password := utils.GetEnv("NEO4J_PASSWORD", "password", log)
	database := utils.GetEnv("NEO4J_DATABASE", "", log)
	timeoutSec := utils.GetEnvAsInt("NEO4J_TIMEOUT_SECONDS", 10, log)
	maxPool := utils.GetEnvAsInt("NEO4J_MAX_POOL_SIZE", 50, log)

	serviceLog.Info("Connecting to Neo4j...", "uri", uri)
	auth := neo4j.BasicAuth(user, password, "")
	driver, err := neo4j.NewDriverWithContext(uri, auth, func(cfg *neo4j.Config) {
		cfg.MaxConnectionPoolSize = maxPool
		cfg.SocketConnectTimeout = time.Duration(timeoutSec) * time.Second
	})
	if err != nil {
		serviceLog.Error("Failed to init Neo4j driver", "error", err)
		return nil, fmt.Errorf("neo4j: init driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		serviceLog.Error("Neo4j connectivity check failed", "error", err)
		return nil, fmt.Errorf("neo4j: verify connectivity: %w", err)
	}
	serviceLog.Info("Neo4j connection established")

	return &Neo4jService{
		driver:   driver,
		database: database,
		log:      serviceLog,
	}, nil
}

func (s *Neo4jService) Close(ctx context.Context) error {
	if s == nil || s.driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s.log.Info("Closing Neo4j connection")
	err := s.driver.Close(ctx)
	s.driver = nil
	return err
}

func (s *Neo4jService) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: s.database,
	})
}

// ExecuteWrite runs work inside one explicit write transaction. The driver
// commits on nil error and rolls back the whole transaction otherwise.
func (s *Neo4jService) ExecuteWrite(ctx context.Context, work func(ctx context.Context, tx neo4j.ManagedTransaction) error) error {
	if s == nil || s.driver == nil {
		return types.ErrNotConnected
	}
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, work(ctx, tx)
	})
	return err
}

func (s *Neo4jService) ExecuteRead(ctx context.Context, work func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error)) (any, error) {
	if s == nil || s.driver == nil {
		return nil, types.ErrNotConnected
	}
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	return session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return work(ctx, tx)
	})
}

// RunWrite executes a single auto-commit write query.
func (s *Neo4jService) RunWrite(ctx context.Context, query string, params map[string]any) error {
	if s == nil || s.driver == nil {
		return types.ErrNotConnected
	}
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	res, err := session.Run(ctx, query, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

// RunRead executes a read query and collects every row as a flat map.
func (s *Neo4jService) RunRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	if s == nil || s.driver == nil {
		return nil, types.ErrNotConnected
	}
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	res, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.AsMap())
	}
	return rows, nil
}

func (s *Neo4jService) HealthCheck(ctx context.Context) bool {
	if s == nil || s.driver == nil {
		return false
	}
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		s.log.Warn("Neo4j health check failed", "error", err)
		return false
	}
	return true
}
