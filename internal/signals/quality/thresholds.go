package quality

// Quality scoring constants. The overall score is a fixed weighted blend of
// four normalized signals; the weights sum to 1.0 so the score stays in
// [0,1] and moves monotonically with each input.
const (
	WeightDocstrings = 0.30
	WeightNaming     = 0.30
	WeightLength     = 0.20
	WeightComplexity = 0.20

	// Function length normalization: full score up to the ideal average
	// length, linear decay to zero at the max
	DefaultIdealFunctionLength = 30.0
	DefaultMaxFunctionLength   = 100.0

	// Complexity-ratio normalization: full score up to the cutoff, linear
	// decay to zero at the max
	DefaultComplexityCutoff = 5.0
	DefaultMaxComplexity    = 15.0
)

// Named naming conventions reported as dominant_naming_convention
const (
	ConventionSnakeCase  = "snake_case"
	ConventionCamelCase  = "camelCase"
	ConventionPascalCase = "PascalCase"
	ConventionMixed      = "mixed"
)
