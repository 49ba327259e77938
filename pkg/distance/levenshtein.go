// Package distance implements the edit distance used for fuzzy headword
// matching and ranking.
package distance

// Levenshtein returns the classic edit distance between a and b, counting
// insertions, deletions and substitutions at cost 1 each.
// Strings are compared rune by rune, so a Cyrillic or Mongolian letter is
// one unit regardless of its UTF-8 width.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two rows of the (len(a)+1) x (len(b)+1) table are enough.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Within reports whether the edit distance between a and b is at most limit.
// A negative limit never matches.
func Within(a, b string, limit int) bool {
	if limit < 0 {
		return false
	}
	return Levenshtein(a, b) <= limit
}
