package matcher

import (
	"math"
	"sort"
	"unicode/utf8"

	"go-performative-rater/internal/dictionary"
	"go-performative-rater/pkg/models"

	"github.com/arbovm/levenshtein"
)

// Per-label cap on matches returned by the similarity cascade.
const maxMatchesPerLabel = 3

// Fuzzy matches below this normalized similarity are discarded.
const partialSimilarityFloor = 0.5

// matchStrategy produces zero or more matches for one normalized label.
// Strategies run in order; the first one that yields anything wins, which
// makes the exact-match short circuit explicit.
type matchStrategy func(label string, confidence float64, allLabelTexts []string) []models.Match

// SimilarityMatcher resolves a single classification label against the
// keyword dictionary using an ordered chain of strategies: exact key hit,
// semantic generalization, then fuzzy edit-distance. Stateless apart from
// the dictionary reference; safe for concurrent use.
type SimilarityMatcher struct {
	keywords   *dictionary.Dictionary
	strategies []matchStrategy
}

// NewSimilarityMatcher creates a matcher over the given keyword dictionary.
func NewSimilarityMatcher(keywords *dictionary.Dictionary) *SimilarityMatcher {
	m := &SimilarityMatcher{keywords: keywords}
	m.strategies = []matchStrategy{
		m.matchExact,
		m.matchSemantic,
		m.matchPartial,
	}
	return m
}

// FindMatches returns up to three matches for one label, sorted by match
// score descending. Empty label text is skipped silently. A confidence of 0
// still produces a (zero-point) match so the item counts as detected.
func (m *SimilarityMatcher) FindMatches(labelText string, confidence float64, allLabelTexts []string) []models.Match {
	normalized := dictionary.Normalize(labelText)
	if normalized == "" {
		return nil
	}

	for _, strategy := range m.strategies {
		matches := strategy(normalized, confidence, allLabelTexts)
		if len(matches) > 0 {
			return topMatches(matches)
		}
	}
	return nil
}

// matchExact returns a single full-score match when the label is itself a
// dictionary key. Exact matches are scaled by the label confidence.
func (m *SimilarityMatcher) matchExact(label string, confidence float64, _ []string) []models.Match {
	weight, ok := m.keywords.Weight(label)
	if !ok {
		return nil
	}
	return []models.Match{{
		Keyword:    label,
		Type:       models.MatchExact,
		MatchScore: 1.0,
		Confidence: confidence,
		Points:     scalePoints(weight, confidence, 1.0),
	}}
}

// matchSemantic maps generic vision labels ("beverage", "bag") to specific
// keywords through the curated table, honoring each entry's co-occurrence
// predicate over the full label set.
func (m *SimilarityMatcher) matchSemantic(label string, confidence float64, allLabelTexts []string) []models.Match {
	targets, ok := semanticTable[label]
	if !ok {
		return nil
	}

	var matches []models.Match
	for _, target := range targets {
		weight, ok := m.keywords.Weight(target.keyword)
		if !ok {
			continue
		}
		if target.when != nil && !target.when(allLabelTexts) {
			continue
		}
		matches = append(matches, models.Match{
			Keyword:    target.keyword,
			Type:       models.MatchSemantic,
			MatchScore: target.baseScore,
			Confidence: confidence,
			Points:     scalePoints(weight, confidence, target.baseScore),
		})
	}
	return matches
}

// matchPartial compares the label against every dictionary key by
// normalized edit distance. Only reached when the exact and semantic tiers
// both came up empty.
func (m *SimilarityMatcher) matchPartial(label string, confidence float64, _ []string) []models.Match {
	var matches []models.Match
	for _, key := range m.keywords.Keys() {
		sim := Similarity(label, key)
		if sim <= partialSimilarityFloor {
			continue
		}
		weight, _ := m.keywords.Weight(key)
		matches = append(matches, models.Match{
			Keyword:    key,
			Type:       models.MatchPartial,
			MatchScore: sim,
			Confidence: confidence,
			Points:     scalePoints(weight, confidence, sim),
		})
	}
	return matches
}

// Similarity returns the normalized edit-distance similarity between two
// strings: 1 - distance/max(len). Identical strings score 1.0. Lengths are
// counted in runes to match the rune-based edit distance.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.Distance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

func scalePoints(weight int, confidence, matchScore float64) int {
	return int(math.Round(float64(weight) * confidence * matchScore))
}

// topMatches sorts by match score descending (stable, so equal scores keep
// dictionary key order) and caps the result at maxMatchesPerLabel.
func topMatches(matches []models.Match) []models.Match {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > maxMatchesPerLabel {
		matches = matches[:maxMatchesPerLabel]
	}
	return matches
}
