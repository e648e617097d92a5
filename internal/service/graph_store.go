package service

import (
	"context"
	"fmt"

	"paperbot-go/internal/config"
	"paperbot-go/internal/model/report"

	"go.uber.org/zap"
)

// GraphStore persists the dependency graph of an analysis run. Persistence
// is an optional side channel: analysis never fails because a store does.
type GraphStore interface {
	// PersistRun writes the entities and dependency edges of one report
	PersistRun(ctx context.Context, rep *report.Report) error

	// Close releases the underlying connection
	Close(ctx context.Context) error
}

// NewGraphStore builds the configured backend. An empty backend disables
// persistence and returns nil.
func NewGraphStore(cfg *config.Config, logger *zap.Logger) (GraphStore, error) {
	switch cfg.Graph.Backend {
	case "":
		return nil, nil
	case "kuzu":
		return NewKuzuGraphStore(cfg.Graph.Kuzu.Path, logger)
	case "neo4j":
		return NewNeo4jGraphStore(cfg.Graph.Neo4j.URI, cfg.Graph.Neo4j.Username, cfg.Graph.Neo4j.Password, logger)
	default:
		return nil, fmt.Errorf("unknown graph backend: %s", cfg.Graph.Backend)
	}
}
