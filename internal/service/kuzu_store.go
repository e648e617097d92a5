package service

import (
	"context"
	"fmt"

	"paperbot-go/internal/model/report"

	"github.com/kuzudb/go-kuzu"
	"go.uber.org/zap"
)

// KuzuGraphStore persists dependency graphs to an embedded Kuzu database
type KuzuGraphStore struct {
	db     *kuzu.Database
	conn   *kuzu.Connection
	logger *zap.Logger
}

// NewKuzuGraphStore opens (or creates) the database at the given path. An
// empty path or ":memory:" opens an in-memory database.
func NewKuzuGraphStore(databasePath string, logger *zap.Logger) (*KuzuGraphStore, error) {
	var db *kuzu.Database
	var err error

	if databasePath == ":memory:" || databasePath == "" {
		db, err = kuzu.OpenInMemoryDatabase(kuzu.DefaultSystemConfig())
	} else {
		db, err = kuzu.OpenDatabase(databasePath, kuzu.DefaultSystemConfig())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Kuzu database: %w", err)
	}

	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create Kuzu connection: %w", err)
	}

	store := &KuzuGraphStore{
		db:     db,
		conn:   conn,
		logger: logger,
	}

	if err := store.initializeSchema(); err != nil {
		store.Close(context.Background())
		return nil, fmt.Errorf("failed to initialize Kuzu schema: %w", err)
	}

	return store, nil
}

// initializeSchema creates the entity node table and the dependency
// relationship table
func (s *KuzuGraphStore) initializeSchema() error {
	schemas := []string{
		`CREATE NODE TABLE IF NOT EXISTS Entity (
			id STRING,
			run STRING,
			name STRING,
			kind STRING,
			PRIMARY KEY (id)
		)`,
		`CREATE REL TABLE IF NOT EXISTS DEPENDS_ON (FROM Entity TO Entity)`,
	}

	for _, schema := range schemas {
		result, err := s.conn.Query(schema)
		if err != nil {
			s.logger.Error("Failed to create Kuzu table", zap.String("schema", schema), zap.Error(err))
			return fmt.Errorf("failed to create table: %w", err)
		}
		result.Close()
	}

	s.logger.Info("Successfully initialized Kuzu schema")
	return nil
}

// PersistRun writes one report's entities and edges. Entity primary keys
// are namespaced by run ID so repeated runs never collide.
func (s *KuzuGraphStore) PersistRun(ctx context.Context, rep *report.Report) error {
	for name, deps := range rep.Dependencies {
		params := map[string]any{
			"id":   rep.RunID + ":" + name,
			"run":  rep.RunID,
			"name": name,
			"kind": deps.Type,
		}
		if err := s.execute(
			"CREATE (e:Entity {id: $id, run: $run, name: $name, kind: $kind})",
			params,
		); err != nil {
			return fmt.Errorf("failed to persist entity %s: %w", name, err)
		}
	}

	for name, deps := range rep.Dependencies {
		for _, target := range deps.DependsOn {
			params := map[string]any{
				"source": rep.RunID + ":" + name,
				"target": rep.RunID + ":" + target,
			}
			if err := s.execute(
				`MATCH (a:Entity {id: $source}), (b:Entity {id: $target})
				 CREATE (a)-[:DEPENDS_ON]->(b)`,
				params,
			); err != nil {
				return fmt.Errorf("failed to persist edge %s -> %s: %w", name, target, err)
			}
		}
	}

	s.logger.Info("Persisted dependency graph to Kuzu",
		zap.String("run_id", rep.RunID),
		zap.Int("entities", len(rep.Dependencies)))
	return nil
}

// execute runs one parameterized write statement
func (s *KuzuGraphStore) execute(query string, params map[string]any) error {
	stmt, err := s.conn.Prepare(query)
	if err != nil {
		s.logger.Error("Failed to prepare Kuzu query", zap.String("query", query), zap.Error(err))
		return fmt.Errorf("failed to prepare query: %w", err)
	}
	defer stmt.Close()

	result, err := s.conn.Execute(stmt, params)
	if err != nil {
		s.logger.Error("Failed to execute Kuzu query", zap.String("query", query), zap.Error(err))
		return fmt.Errorf("failed to execute query: %w", err)
	}
	result.Close()
	return nil
}

// Close closes the connection and database
func (s *KuzuGraphStore) Close(ctx context.Context) error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}
