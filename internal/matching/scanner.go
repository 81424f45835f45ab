package matching

import (
	"context"
	"log/slog"
	"sort"
)

// ContentStore reads stored document bytes by locator.
type ContentStore interface {
	Read(ctx context.Context, locator string) ([]byte, error)
}

// Reference is one previously processed document offered for comparison.
type Reference struct {
	Name    string
	Locator string
}

// ReportedMatch is a sentence match with its similarity rounded to a whole
// percentage for external reporting.
type ReportedMatch struct {
	Original   string `json:"original"`
	Matched    string `json:"matched"`
	Similarity int    `json:"similarity"`
}

// Result is the outcome of comparing the candidate against one reference
// document that qualified for reporting.
type Result struct {
	Name       string          `json:"filename"`
	Similarity int             `json:"similarity"`
	Matches    []ReportedMatch `json:"matches"`
}

// Scanner compares candidate text against a corpus of stored reference
// documents.
type Scanner struct {
	store  ContentStore
	logger *slog.Logger
}

// NewScanner creates a scanner reading reference content from store.
func NewScanner(store ContentStore, logger *slog.Logger) *Scanner {
	return &Scanner{
		store:  store,
		logger: logger,
	}
}

// Scan compares candidate against every reference, in the order supplied.
// References whose content cannot be read are skipped so one bad file never
// aborts the whole scan. A reference is reported when its overall similarity
// reaches DocumentMatchThreshold or it has at least one sentence match;
// either condition alone qualifies. Results are ordered by similarity
// descending; ties keep scan order.
func (s *Scanner) Scan(ctx context.Context, candidate string, refs []Reference) []Result {
	results := make([]Result, 0, len(refs))

	for _, ref := range refs {
		raw, err := s.store.Read(ctx, ref.Locator)
		if err != nil {
			s.logger.Warn("skipping unreadable reference",
				"name", ref.Name,
				"locator", ref.Locator,
				"error", err,
			)
			continue
		}

		content := string(raw)
		overall := Similarity(candidate, content)
		matches := MatchSentences(candidate, content)

		if overall >= DocumentMatchThreshold || len(matches) > 0 {
			reported := make([]ReportedMatch, len(matches))
			for i, m := range matches {
				reported[i] = ReportedMatch{
					Original:   m.Original,
					Matched:    m.Matched,
					Similarity: RoundPercent(m.Similarity),
				}
			}
			results = append(results, Result{
				Name:       ref.Name,
				Similarity: RoundPercent(overall),
				Matches:    reported,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	return results
}
