package service

import (
	"context"
	"fmt"

	"paperbot-go/internal/model/report"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Neo4jGraphStore persists dependency graphs to a Neo4j server
type Neo4jGraphStore struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewNeo4jGraphStore connects to Neo4j and verifies connectivity
func NewNeo4jGraphStore(uri, username, password string, logger *zap.Logger) (*Neo4jGraphStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		driver.Close(context.Background())
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	return &Neo4jGraphStore{
		driver: driver,
		logger: logger,
	}, nil
}

// PersistRun writes one report's entities and edges in a single write
// transaction
func (s *Neo4jGraphStore) PersistRun(ctx context.Context, rep *report.Report) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for name, deps := range rep.Dependencies {
			_, err := tx.Run(ctx,
				`MERGE (e:Entity {id: $id})
				 SET e.run = $run, e.name = $name, e.kind = $kind`,
				map[string]any{
					"id":   rep.RunID + ":" + name,
					"run":  rep.RunID,
					"name": name,
					"kind": deps.Type,
				})
			if err != nil {
				return nil, err
			}
		}

		for name, deps := range rep.Dependencies {
			for _, target := range deps.DependsOn {
				_, err := tx.Run(ctx,
					`MATCH (a:Entity {id: $source}), (b:Entity {id: $target})
					 MERGE (a)-[:DEPENDS_ON]->(b)`,
					map[string]any{
						"source": rep.RunID + ":" + name,
						"target": rep.RunID + ":" + target,
					})
				if err != nil {
					return nil, err
				}
			}
		}
		return nil, nil
	})

	if err != nil {
		s.logger.Error("Failed to persist dependency graph to Neo4j",
			zap.String("run_id", rep.RunID),
			zap.Error(err))
		return fmt.Errorf("failed to persist run %s: %w", rep.RunID, err)
	}

	s.logger.Info("Persisted dependency graph to Neo4j",
		zap.String("run_id", rep.RunID),
		zap.Int("entities", len(rep.Dependencies)))
	return nil
}

// Close closes the driver
func (s *Neo4jGraphStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
