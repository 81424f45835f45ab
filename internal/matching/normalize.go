package matching

import (
	"regexp"
	"strings"
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Normalize produces the canonical form used for scoring: lowercased, with
// whitespace runs collapsed to single spaces and surrounding whitespace
// removed.
func Normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// SplitSentences segments text on runs of '.', '!' and '?'. Each segment is
// trimmed; empty segments are dropped. Order is preserved and duplicate
// sentences are kept.
func SplitSentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
