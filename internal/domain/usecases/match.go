// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
// They contain NO framework code - just business logic.
package usecases

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
)

// SimilarityMatcher finds the stored question closest to a query.
// Pure: no state, no I/O.
type SimilarityMatcher struct{}

// NewSimilarityMatcher creates a SimilarityMatcher.
func NewSimilarityMatcher() *SimilarityMatcher {
	return &SimilarityMatcher{}
}

// BestMatch scans the whole base and returns the highest scoring pair.
// Ties keep the earliest pair. An empty base yields a nil pair and score 0.
func (m *SimilarityMatcher) BestMatch(query string, base entities.KnowledgeBase) entities.MatchResult {
	q := normalize(query)
	best := entities.MatchResult{}

	for i := 0; i < base.Len(); i++ {
		pair := base.Pair(i)
		score := Ratio(q, normalize(pair.Question))
		if score > best.Score {
			p := pair
			best = entities.MatchResult{Pair: &p, Score: score}
		}
	}
	return best
}

// normalize must be applied to both sides before scoring.
// Lowercasing follows Turkish rules so I/ı and İ/i pair up.
// A Caser is stateful, hence one per call.
func normalize(s string) string {
	return cases.Lower(language.Turkish).String(strings.TrimSpace(s))
}

// Ratio returns 2*LCS/(len(a)+len(b)) over runes, where LCS is the length of
// the longest common subsequence. Two empty strings score 1.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2 * float64(lcsLen(ra, rb)) / float64(total)
}

// lcsLen is the classic two-row dynamic program, O(len(a)*len(b)) time and
// O(min) space.
func lcsLen(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
