package match

import "unicode/utf8"

// EditDistance returns the Levenshtein distance between a and b counted in
// runes. It only feeds suggestions for unmatched fields.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	// row[j] is the distance between the consumed prefix of ra and rb[:j].
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(rb); j++ {
			above := row[j]

			sub := diag
			if ra[i-1] != rb[j-1] {
				sub++
			}

			row[j] = min(above+1, row[j-1]+1, sub)
			diag = above
		}
	}

	return row[len(rb)]
}

// Similarity compares two field names by their compact forms: 1 when they
// normalize to the same string, 0 when no rune lines up.
func Similarity(a, b string) float64 {
	return ratio(NormalizeIdent(a), NormalizeIdent(b))
}

func ratio(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}

	return 1 - float64(EditDistance(a, b))/float64(longest)
}
