package matcher

import (
	"math"
	"strings"
	"unicode"

	"go-performative-rater/internal/dictionary"
	"go-performative-rater/pkg/models"
)

const (
	// Fixed confidence assigned to full text-pattern matches; the OCR
	// provider gives no per-span confidence.
	textMatchConfidence = 0.9
	// Partial (span-level) matches score 80% of the phrase weight at 0.8
	// confidence.
	textPartialConfidence   = 0.8
	textPartialWeightFactor = 0.8
	// A span may exceed the phrase length by at most this many characters
	// for a partial match; longer spans are sentences or unrelated words.
	textPartialLengthSlack = 3
)

// TextMatcher scans OCR output for known brands, authors, and cultural
// references. Multi-word phrases match as substrings of the concatenated
// text (so fragments split across spans still connect); single-word phrases
// must appear as their own token, with a span-proximity fallback for OCR
// noise glued onto the word. Multi-word phrases are never partially
// matched: sentence fragments make that tier far too loose.
type TextMatcher struct {
	patterns *dictionary.Dictionary
}

// NewTextMatcher creates a matcher over the given text-pattern dictionary.
func NewTextMatcher(patterns *dictionary.Dictionary) *TextMatcher {
	return &TextMatcher{patterns: patterns}
}

// MatchText returns text and text-partial matches for the given spans,
// iterating patterns in sorted order for deterministic output.
func (m *TextMatcher) MatchText(spans []models.TextSpan) []models.Match {
	if len(spans) == 0 {
		return nil
	}

	parts := make([]string, 0, len(spans))
	for _, span := range spans {
		text := dictionary.Normalize(span.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	full := strings.Join(parts, " ")

	var matches []models.Match
	for _, phrase := range m.patterns.Keys() {
		weight, _ := m.patterns.Weight(phrase)

		if strings.Contains(phrase, " ") {
			if strings.Contains(full, phrase) {
				matches = append(matches, fullTextMatch(phrase, weight))
			}
			continue
		}

		if containsToken(full, phrase) {
			matches = append(matches, fullTextMatch(phrase, weight))
			continue
		}

		for _, part := range parts {
			if strings.Contains(part, phrase) && len(part) <= len(phrase)+textPartialLengthSlack {
				matches = append(matches, partialTextMatch(phrase, weight))
				break
			}
		}
	}
	return matches
}

func fullTextMatch(phrase string, weight int) models.Match {
	return models.Match{
		Keyword:    phrase,
		Type:       models.MatchText,
		MatchScore: 1.0,
		Confidence: textMatchConfidence,
		Points:     int(math.Round(float64(weight) * textMatchConfidence)),
	}
}

func partialTextMatch(phrase string, weight int) models.Match {
	return models.Match{
		Keyword:    phrase,
		Type:       models.MatchTextPartial,
		MatchScore: textPartialConfidence,
		Confidence: textPartialConfidence,
		Points:     int(math.Round(float64(weight) * textPartialWeightFactor * textPartialConfidence)),
	}
}

// containsToken reports whether word appears as its own token in text,
// ignoring surrounding punctuation.
func containsToken(text, word string) bool {
	for _, token := range strings.Fields(text) {
		trimmed := strings.TrimFunc(token, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if trimmed == word {
			return true
		}
	}
	return false
}
