package matching

// SentenceMatch is one high-confidence sentence pair: a candidate sentence
// and the reference sentence it matched, with their similarity rounded to
// two decimals.
type SentenceMatch struct {
	Original   string
	Matched    string
	Similarity float64
}

// MatchSentences pairs every sentence of candidate with every sentence of
// reference and keeps the pairs scoring at or above SentenceMatchThreshold.
// Pairs are not deduplicated and no best-match filtering is applied: a
// single candidate sentence may appear in several kept pairs. Output order
// follows the nested iteration (candidate outer, reference inner) in
// segmentation order.
func MatchSentences(candidate, reference string) []SentenceMatch {
	candSentences := SplitSentences(candidate)
	refSentences := SplitSentences(reference)

	var matches []SentenceMatch
	for _, cs := range candSentences {
		for _, rs := range refSentences {
			sim := Similarity(cs, rs)
			if sim >= SentenceMatchThreshold {
				matches = append(matches, SentenceMatch{
					Original:   cs,
					Matched:    rs,
					Similarity: Round2(sim),
				})
			}
		}
	}
	return matches
}
