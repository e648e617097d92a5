// Package quality computes the composite code-quality block: docstring
// coverage, naming consistency, average function length, complexity ratio
// and their weighted blend.
package quality

import (
	"paperbot-go/internal/model/code"
	"paperbot-go/internal/model/report"
)

// Scorer computes quality metrics with configurable normalization cutoffs
type Scorer struct {
	idealLength      float64
	maxLength        float64
	complexityCutoff float64
	maxComplexity    float64
}

// NewScorer creates a scorer; non-positive arguments fall back to the
// documented defaults
func NewScorer(idealLength, complexityCutoff float64) *Scorer {
	if idealLength <= 0 {
		idealLength = DefaultIdealFunctionLength
	}
	if complexityCutoff <= 0 {
		complexityCutoff = DefaultComplexityCutoff
	}
	s := &Scorer{
		idealLength:      idealLength,
		maxLength:        DefaultMaxFunctionLength,
		complexityCutoff: complexityCutoff,
		maxComplexity:    DefaultMaxComplexity,
	}
	if s.maxLength <= s.idealLength {
		s.maxLength = s.idealLength * 2
	}
	if s.maxComplexity <= s.complexityCutoff {
		s.maxComplexity = s.complexityCutoff * 2
	}
	return s
}

// Score computes the quality block from the inventory and the complexity
// rollups
func (s *Scorer) Score(inv *code.Inventory, cx report.Complexity) report.QualityMetrics {
	callables := inv.Callables()
	metrics := report.QualityMetrics{DominantNamingConvention: ConventionMixed}

	if len(callables) > 0 {
		documented := 0
		totalLines := 0
		for _, fn := range callables {
			if fn.Docstring {
				documented++
			}
			totalLines += fn.LineCount()
		}
		metrics.DocstringCoverage = float64(documented) / float64(len(callables))
		metrics.AverageFunctionLength = float64(totalLines) / float64(len(callables))
		metrics.ComplexityRatio = float64(cx.Overall.TotalCyclomatic) / float64(len(callables))
	}

	names := make([]string, 0, len(callables)+len(inv.Classes))
	for _, fn := range callables {
		names = append(names, fn.Name)
	}
	for _, cls := range inv.Classes {
		names = append(names, cls.Name)
	}
	metrics.DominantNamingConvention, metrics.NamingConsistency = dominantConvention(names)

	metrics.OverallQuality = WeightDocstrings*metrics.DocstringCoverage +
		WeightNaming*metrics.NamingConsistency +
		WeightLength*decay(metrics.AverageFunctionLength, s.idealLength, s.maxLength) +
		WeightComplexity*decay(metrics.ComplexityRatio, s.complexityCutoff, s.maxComplexity)

	return metrics
}

// decay maps a value to [0,1]: full score at or below low, linear decline
// to zero at high. Monotonically non-increasing in value.
func decay(value, low, high float64) float64 {
	if value <= low {
		return 1
	}
	if value >= high {
		return 0
	}
	return (high - value) / (high - low)
}
