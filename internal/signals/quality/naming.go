package quality

import (
	"regexp"
	"strings"
)

var (
	snakePattern  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	camelPattern  = regexp.MustCompile(`^[a-z][a-z0-9]*(?:[A-Z][a-z0-9]*)+$`)
	pascalPattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
)

// classifyConvention labels one identifier with its naming convention.
// Leading and trailing underscores (dunder names, private markers) are
// stripped before matching. Single lowercase words count as snake_case.
func classifyConvention(name string) string {
	trimmed := strings.Trim(name, "_")
	if trimmed == "" {
		return ConventionMixed
	}
	switch {
	case snakePattern.MatchString(trimmed):
		return ConventionSnakeCase
	case camelPattern.MatchString(trimmed):
		return ConventionCamelCase
	case pascalPattern.MatchString(trimmed):
		return ConventionPascalCase
	default:
		return ConventionMixed
	}
}

// dominantConvention finds the most common convention among the given
// identifiers and the fraction of identifiers following it. Ties break in
// first-seen order; an empty input reports mixed with zero consistency.
func dominantConvention(names []string) (string, float64) {
	if len(names) == 0 {
		return ConventionMixed, 0
	}

	counts := make(map[string]int)
	var order []string
	classified := 0
	for _, name := range names {
		conv := classifyConvention(name)
		if conv == ConventionMixed {
			continue
		}
		classified++
		if counts[conv] == 0 {
			order = append(order, conv)
		}
		counts[conv]++
	}

	if classified == 0 {
		return ConventionMixed, 0
	}

	dominant := order[0]
	for _, conv := range order[1:] {
		if counts[conv] > counts[dominant] {
			dominant = conv
		}
	}
	return dominant, float64(counts[dominant]) / float64(len(names))
}
