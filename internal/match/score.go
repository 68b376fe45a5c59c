package match

import "strings"

// Score tiers.
const (
	ScoreExact           = 100
	ScoreNormalizedExact = 90
	ScorePrefix          = 70
	ScoreNormalizedPref  = 50
	ScoreSubstring       = 30
)

// minAffixLen is the shortest string a prefix or substring tier may rest on.
const minAffixLen = 3

// Score returns the best tier any alias of e reaches for n, or 0.
// Filters are not applied here.
func Score(n Normalized, e *SchemaEntry) int {
	score, _ := bestAlias(n, e)

	return score
}

// bestAlias returns the top score and the first alias reaching it.
func bestAlias(n Normalized, e *SchemaEntry) (int, string) {
	if n.Name == "" {
		return 0, ""
	}

	best, alias := 0, ""

	for i, a := range e.Aliases {
		s := scoreAlias(n, a, e.compact[i])
		if s > best {
			best, alias = s, a
		}

		if best == ScoreExact {
			break
		}
	}

	return best, alias
}

func scoreAlias(n Normalized, alias, compactAlias string) int {
	switch {
	case n.Name == alias:
		return ScoreExact
	case n.Compact == compactAlias:
		return ScoreNormalizedExact
	case isPrefixEither(n.Name, alias):
		return ScorePrefix
	case isPrefixEither(n.Compact, compactAlias):
		return ScoreNormalizedPref
	case !n.HasSuffix() && len(compactAlias) >= minAffixLen && strings.Contains(n.Compact, compactAlias):
		return ScoreSubstring
	}

	return 0
}

// isPrefixEither reports whether the shorter of a, b starts the longer one.
func isPrefixEither(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}

	return len(a) >= minAffixLen && strings.HasPrefix(b, a)
}
