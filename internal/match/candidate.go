package match

import "sort"

// Candidate is one scored (field, schema entry) pair.
type Candidate struct {
	Entry *SchemaEntry
	// Alias is the first alias reaching Score.
	Alias string
	Score int

	// order is the entry's declaration index, used to break ties.
	order int
}

// Accepted returns true if the score meets the entry's minimum.
func (c Candidate) Accepted() bool {
	return c.Score >= c.Entry.MinScore()
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores n against every entry of s that survives the category and
// bar filters. Zero scores are dropped. The result is sorted by score
// descending, then by declaration order.
func Rank(n Normalized, s *Schema) CandidateList {
	allowed := AllowedCategories(n)

	var candidates CandidateList

	for i, e := range s.entries {
		if !allowed.Contains(e.Category()) || Barred(n, e) {
			continue
		}

		score, alias := bestAlias(n, e)
		if score == 0 {
			continue
		}

		candidates = append(candidates, Candidate{
			Entry: e,
			Alias: alias,
			Score: score,
			order: i,
		})
	}

	sort.Stable(candidates)

	return candidates
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by schema declaration order.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].order < c[j].order
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the top two candidates share a score.
func (c CandidateList) IsAmbiguous() bool {
	return len(c) > 1 && c[0].Score == c[1].Score
}

// SelectBest returns the highest-ranked candidate that meets its entry's
// minimum, or nil. A strict entry reached only by a prefix or substring
// match is passed over, so a lower-ranked lenient entry can still win.
func SelectBest(c CandidateList) *Candidate {
	for i := range c {
		if c[i].Accepted() {
			return &c[i]
		}
	}

	return nil
}
