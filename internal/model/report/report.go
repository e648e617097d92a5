// Package report defines the serialized analysis report. The JSON field
// names and nesting form the contract with the downstream paper generator
// and must not change.
package report

// Report is the complete, immutable output of one analysis run
type Report struct {
	RunID    string `json:"run_id"`
	Language string `json:"language"`

	Metrics      FileMetrics                `json:"metrics"`
	Complexity   Complexity                 `json:"complexity"`
	Dependencies map[string]EntityDeps      `json:"dependencies"`
	Algorithms   map[string]map[string]bool `json:"algorithms"`
	DataFlow     DataFlow                   `json:"data_flow"`
	CodeQuality  QualityMetrics             `json:"code_quality"`
}

// FileMetrics holds file-level counts
type FileMetrics struct {
	TotalLines     int `json:"total_lines"`
	NonEmptyLines  int `json:"non_empty_lines"`
	CharacterCount int `json:"character_count"`
	ImportCount    int `json:"import_count"`
	ClassCount     int `json:"class_count"`
	FunctionCount  int `json:"function_count"`
}

// FunctionScore is the complexity score of one function or method
type FunctionScore struct {
	Cyclomatic int     `json:"cyclomatic"`
	Cognitive  float64 `json:"cognitive"`
	Lines      int     `json:"lines"`
}

// ClassScore aggregates the scores of a class's methods
type ClassScore struct {
	Methods         []string `json:"methods"`
	TotalCyclomatic int      `json:"total_cyclomatic"`
	TotalCognitive  float64  `json:"total_cognitive"`
	Lines           int      `json:"lines"`
}

// OverallComplexity are the file-level complexity rollups
type OverallComplexity struct {
	TotalCyclomatic   int     `json:"total_cyclomatic"`
	TotalCognitive    float64 `json:"total_cognitive"`
	AverageCyclomatic float64 `json:"average_cyclomatic"`
	AverageCognitive  float64 `json:"average_cognitive"`
	ComplexityDensity float64 `json:"complexity_density"`
}

// Complexity groups every complexity score in the report
type Complexity struct {
	Functions map[string]FunctionScore `json:"functions"`
	Classes   map[string]ClassScore    `json:"classes"`
	Overall   OverallComplexity        `json:"overall"`
}

// EntityDeps lists the dependency relations of one entity. Both directions
// are derived from the same canonical edge set.
type EntityDeps struct {
	Type       string   `json:"type"`
	DependsOn  []string `json:"depends_on"`
	DependedBy []string `json:"depended_by"`
}

// EntryPoint records the declared parameters of one callable
type EntryPoint struct {
	Function   string   `json:"function"`
	Parameters []string `json:"parameters"`
}

// ExitPoint records the syntactic return heads of one callable
type ExitPoint struct {
	Function string   `json:"function"`
	Returns  []string `json:"returns"`
}

// DataFlow is the per-function entry/exit point summary
type DataFlow struct {
	EntryPoints []EntryPoint `json:"entry_points"`
	ExitPoints  []ExitPoint  `json:"exit_points"`
}

// QualityMetrics is the composite quality block
type QualityMetrics struct {
	DocstringCoverage        float64 `json:"docstring_coverage"`
	NamingConsistency        float64 `json:"naming_consistency"`
	AverageFunctionLength    float64 `json:"average_function_length"`
	ComplexityRatio          float64 `json:"complexity_ratio"`
	OverallQuality           float64 `json:"overall_quality"`
	DominantNamingConvention string  `json:"dominant_naming_convention"`
}
