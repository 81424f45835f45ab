package matching

// Distance returns the Levenshtein edit distance between a and b: the
// minimum number of single-character insertions, deletions and substitutions
// needed to turn a into b. It operates on code points, not bytes, so a
// multi-byte character counts as a single edit.
//
// Only two rows of the dynamic-programming table are kept live, giving
// O(len(a)*len(b)) time and O(min(len(a), len(b))) space. The result is
// identical to the full-table computation.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Keep the shorter string on the row axis.
	if len(rb) < len(ra) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}
