package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestKuzuConfig_Parsing(t *testing.T) {
	// Test KuzuConfig struct
	kuzu := KuzuConfig{
		Path: "/path/to/kuzu.db",
	}

	if kuzu.Path != "/path/to/kuzu.db" {
		t.Fatalf("Expected path '/path/to/kuzu.db', got '%s'", kuzu.Path)
	}
}

func TestConfig_GraphBackendField(t *testing.T) {
	// Test that Config struct selects the Kuzu backend
	config := Config{
		Graph: GraphConfig{
			Backend: "kuzu",
			Kuzu: KuzuConfig{
				Path: ":memory:",
			},
		},
	}

	if config.Graph.Backend != "kuzu" {
		t.Fatalf("Expected backend 'kuzu', got '%s'", config.Graph.Backend)
	}
	if config.Graph.Kuzu.Path != ":memory:" {
		t.Fatalf("Expected Kuzu path ':memory:', got '%s'", config.Graph.Kuzu.Path)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	content := `
app:
  port: 9090
  log_level: debug
mcp:
  port: 9091
graph:
  backend: neo4j
  neo4j:
    uri: bolt://localhost:7687
    username: neo4j
    password: secret
analysis:
  cognitive_flat_multiplier: 2.0
  cognitive_nesting_increment: 1.0
`
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.App.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.App.Port)
	}
	if cfg.Mcp.GetAddress() != ":9091" {
		t.Errorf("Expected MCP address ':9091', got '%s'", cfg.Mcp.GetAddress())
	}
	if cfg.Graph.Neo4j.URI != "bolt://localhost:7687" {
		t.Errorf("Expected Neo4j URI 'bolt://localhost:7687', got '%s'", cfg.Graph.Neo4j.URI)
	}
	if cfg.Analysis.CognitiveFlatMultiplier != 2.0 {
		t.Errorf("Expected flat multiplier 2.0, got %f", cfg.Analysis.CognitiveFlatMultiplier)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte("app: {}\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.App.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.App.Port)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("Expected default log level 'info', got '%s'", cfg.App.LogLevel)
	}
	if cfg.Graph.Backend != "" {
		t.Errorf("Expected persistence disabled by default, got backend '%s'", cfg.Graph.Backend)
	}
}
