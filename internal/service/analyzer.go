package service

import (
	"context"
	"fmt"

	"paperbot-go/internal/config"
	"paperbot-go/internal/model/report"
	"paperbot-go/internal/signals/complexity"
	"paperbot-go/internal/signals/dataflow"
	"paperbot-go/internal/signals/depgraph"
	"paperbot-go/internal/signals/patterns"
	"paperbot-go/internal/signals/quality"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Analyzer runs the full analysis pipeline: parse, score, assemble. One
// source unit in, one immutable Report out. Stages run strictly in
// sequence and each consumes the prior stage's complete output, so
// concurrent Analyze calls share no mutable state beyond the
// mutex-guarded parsers.
type Analyzer struct {
	parsers    *ParserRegistry
	probes     *patterns.Registry
	calculator *complexity.Calculator
	scorer     *quality.Scorer
	store      GraphStore
	logger     *zap.Logger
}

// NewAnalyzer wires the parsers for every supported language and the
// analysis stages. store may be nil to disable graph persistence.
func NewAnalyzer(cfg *config.Config, store GraphStore, logger *zap.Logger) (*Analyzer, error) {
	registry := NewParserRegistry()

	constructors := []func() (*TreeSitterParser, error){
		NewPythonParser,
		NewGoParser,
		NewJavaParser,
		NewJavaScriptParser,
		NewTypeScriptParser,
	}
	for _, construct := range constructors {
		parser, err := construct()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize parser: %w", err)
		}
		registry.Register(parser)
	}

	return &Analyzer{
		parsers:    registry,
		probes:     patterns.DefaultRegistry(logger),
		calculator: complexity.NewCalculator(cfg.Analysis.CognitiveFlatMultiplier, cfg.Analysis.CognitiveNestingIncrement),
		scorer:     quality.NewScorer(cfg.Analysis.IdealFunctionLength, cfg.Analysis.ComplexityCutoff),
		store:      store,
		logger:     logger,
	}, nil
}

// Languages returns the supported language identifiers
func (a *Analyzer) Languages() []string {
	return a.parsers.Languages()
}

// ProbeNames returns the registered pattern probe names
func (a *Analyzer) ProbeNames() []string {
	return a.probes.Names()
}

// Analyze runs one analysis. On a fatal parse failure the returned error
// is a *MalformedSourceError and no Report is produced.
func (a *Analyzer) Analyze(ctx context.Context, source []byte, language string) (*report.Report, error) {
	runID := uuid.NewString()

	a.logger.Info("Starting analysis",
		zap.String("run_id", runID),
		zap.String("language", language),
		zap.Int("bytes", len(source)))

	parser, err := a.parsers.Get(language)
	if err != nil {
		return nil, err
	}

	inv, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Extracted inventory",
		zap.String("run_id", runID),
		zap.Int("functions", inv.FunctionCount()),
		zap.Int("classes", inv.ClassCount()),
		zap.Int("imports", inv.ImportCount))

	cx := a.calculator.Analyze(inv)
	graph := depgraph.Build(inv)

	rep := &report.Report{
		RunID:    runID,
		Language: language,
		Metrics: report.FileMetrics{
			TotalLines:     inv.TotalLines,
			NonEmptyLines:  inv.NonEmptyLines,
			CharacterCount: inv.CharacterCount,
			ImportCount:    inv.ImportCount,
			ClassCount:     inv.ClassCount(),
			FunctionCount:  inv.FunctionCount(),
		},
		Complexity:   cx,
		Dependencies: graph.Dependencies(),
		Algorithms:   a.probes.DetectAll(inv, string(source)),
		DataFlow:     dataflow.Summarize(inv),
		CodeQuality:  a.scorer.Score(inv, cx),
	}

	if a.store != nil {
		if err := a.store.PersistRun(ctx, rep); err != nil {
			// persistence is best-effort, the report is already complete
			a.logger.Warn("Failed to persist dependency graph",
				zap.String("run_id", runID),
				zap.Error(err))
		}
	}

	a.logger.Info("Analysis complete",
		zap.String("run_id", runID),
		zap.Int("total_cyclomatic", rep.Complexity.Overall.TotalCyclomatic),
		zap.Float64("overall_quality", rep.CodeQuality.OverallQuality))

	return rep, nil
}
