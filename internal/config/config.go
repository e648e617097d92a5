package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the application configuration loaded from YAML
type Config struct {
	App      AppConfig      `yaml:"app"`
	Mcp      McpConfig      `yaml:"mcp"`
	Graph    GraphConfig    `yaml:"graph"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// AppConfig holds server settings
type AppConfig struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

// McpConfig holds the MCP transport settings. A zero port disables the
// MCP listener.
type McpConfig struct {
	Port int `yaml:"port"`
}

// GetAddress returns the MCP listen address
func (m McpConfig) GetAddress() string {
	return fmt.Sprintf(":%d", m.Port)
}

// GraphConfig selects the dependency-graph persistence backend.
// Backend is "kuzu", "neo4j" or empty to disable persistence.
type GraphConfig struct {
	Backend string      `yaml:"backend"`
	Kuzu    KuzuConfig  `yaml:"kuzu"`
	Neo4j   Neo4jConfig `yaml:"neo4j"`
}

// KuzuConfig holds the embedded Kuzu database settings
type KuzuConfig struct {
	Path string `yaml:"path"`
}

// Neo4jConfig holds the Neo4j driver settings
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// AnalysisConfig holds the tunable analysis constants. Zero values fall
// back to the documented defaults.
type AnalysisConfig struct {
	CognitiveFlatMultiplier   float64 `yaml:"cognitive_flat_multiplier"`
	CognitiveNestingIncrement float64 `yaml:"cognitive_nesting_increment"`
	IdealFunctionLength       float64 `yaml:"ideal_function_length"`
	ComplexityCutoff          float64 `yaml:"complexity_cutoff"`
}

// LoadConfig reads and parses the YAML configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// DefaultConfig returns a configuration with every default applied
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
}
