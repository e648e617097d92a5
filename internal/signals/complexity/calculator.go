// Package complexity scores function bodies from the parser's syntax
// summaries. Cyclomatic complexity counts decision points depth-blind;
// cognitive complexity additionally penalizes nesting.
package complexity

import (
	"paperbot-go/internal/model/code"
	"paperbot-go/internal/model/report"
)

const (
	// DefaultFlatMultiplier keeps cognitive = cyclomatic * 1.5 for bodies
	// with no nesting
	DefaultFlatMultiplier = 1.5

	// DefaultNestingIncrement is the extra cognitive cost per nesting level
	// of each control structure
	DefaultNestingIncrement = 0.5
)

// Calculator computes complexity scores for callables
type Calculator struct {
	flatMultiplier   float64
	nestingIncrement float64
}

// NewCalculator creates a calculator; non-positive arguments fall back to
// the defaults
func NewCalculator(flatMultiplier, nestingIncrement float64) *Calculator {
	if flatMultiplier <= 0 {
		flatMultiplier = DefaultFlatMultiplier
	}
	if nestingIncrement <= 0 {
		nestingIncrement = DefaultNestingIncrement
	}
	return &Calculator{
		flatMultiplier:   flatMultiplier,
		nestingIncrement: nestingIncrement,
	}
}

// Score computes the complexity of one callable. Bodies the parser could
// not analyze degrade to baseline scores with the line span kept intact.
func (c *Calculator) Score(fn *code.FunctionInfo) report.FunctionScore {
	if fn.Body.Unsupported {
		return report.FunctionScore{
			Cyclomatic: 1,
			Cognitive:  c.flatMultiplier,
			Lines:      fn.LineCount(),
		}
	}

	cyclomatic := 1
	nestingPenalty := 0.0
	for _, event := range fn.Body.Controls {
		cyclomatic++
		if event.Depth > 0 {
			nestingPenalty += c.nestingIncrement * float64(event.Depth)
		}
	}

	return report.FunctionScore{
		Cyclomatic: cyclomatic,
		Cognitive:  float64(cyclomatic)*c.flatMultiplier + nestingPenalty,
		Lines:      fn.LineCount(),
	}
}

// Analyze scores every callable in the inventory and rolls the scores up
// per class and for the whole file
func (c *Calculator) Analyze(inv *code.Inventory) report.Complexity {
	result := report.Complexity{
		Functions: make(map[string]report.FunctionScore),
		Classes:   make(map[string]report.ClassScore),
	}

	for _, fn := range inv.Callables() {
		result.Functions[fn.QualifiedName()] = c.Score(fn)
	}

	for _, cls := range inv.Classes {
		score := report.ClassScore{
			Methods: make([]string, 0, len(cls.Methods)),
			Lines:   cls.LineCount(),
		}
		for _, m := range cls.Methods {
			score.Methods = append(score.Methods, m.Name)
			fnScore := result.Functions[m.QualifiedName()]
			score.TotalCyclomatic += fnScore.Cyclomatic
			score.TotalCognitive += fnScore.Cognitive
		}
		result.Classes[cls.Name] = score
	}

	for _, fnScore := range result.Functions {
		result.Overall.TotalCyclomatic += fnScore.Cyclomatic
		result.Overall.TotalCognitive += fnScore.Cognitive
	}
	if count := inv.FunctionCount(); count > 0 {
		result.Overall.AverageCyclomatic = float64(result.Overall.TotalCyclomatic) / float64(count)
		result.Overall.AverageCognitive = result.Overall.TotalCognitive / float64(count)
	}
	if inv.NonEmptyLines > 0 {
		result.Overall.ComplexityDensity = float64(result.Overall.TotalCyclomatic) / float64(inv.NonEmptyLines)
	}

	return result
}
