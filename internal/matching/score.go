package matching

import "math"

const (
	// SentenceMatchThreshold is the minimum similarity for a sentence pair
	// to be kept as a match.
	SentenceMatchThreshold = 80.0

	// DocumentMatchThreshold is the minimum overall similarity for a
	// reference document to be reported when it has no sentence matches.
	DocumentMatchThreshold = 30.0
)

// Similarity scores two texts as a percentage in [0, 100]. Both inputs are
// normalized first; two empty texts are identical by definition (100). The
// score is relative to the longer text's length, so a short string scores
// low against a long one even when it appears verbatim inside it.
func Similarity(a, b string) float64 {
	a = Normalize(a)
	b = Normalize(b)

	la := len([]rune(a))
	lb := len([]rune(b))
	maxLen := max(la, lb)
	if maxLen == 0 {
		return 100
	}

	dist := Distance(a, b)
	return float64(maxLen-dist) / float64(maxLen) * 100
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundPercent rounds half away from zero to the nearest whole percentage.
func RoundPercent(v float64) int {
	return int(math.Round(v))
}
