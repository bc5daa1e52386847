package scoring

import (
	"math"

	"go-performative-rater/internal/dictionary"
	apperrors "go-performative-rater/internal/errors"
	"go-performative-rater/internal/matcher"
	"go-performative-rater/pkg/models"
)

// Engine runs one classification result through the text matcher, the
// similarity matcher, and the contextual adjuster, deduplicates overlapping
// matches, and produces a bounded RatingResult. Stateless apart from the
// dictionary references; any number of scoring calls may run concurrently.
type Engine struct {
	similarity *matcher.SimilarityMatcher
	text       *matcher.TextMatcher
	adjuster   *ContextAdjuster
}

// NewEngine creates a scoring engine over the given dictionaries.
func NewEngine(keywords, patterns *dictionary.Dictionary) *Engine {
	return &Engine{
		similarity: matcher.NewSimilarityMatcher(keywords),
		text:       matcher.NewTextMatcher(patterns),
		adjuster:   NewContextAdjuster(),
	}
}

// Score converts labels and OCR spans into a RatingResult. A nil label
// slice is a caller mistake (InvalidInput); spans are optional. Malformed
// individual labels are skipped, never fatal. The final score is clamped to
// [0,100]; metadata keeps the raw pre-clamp sum for diagnostics.
func (e *Engine) Score(labels []models.Label, spans []models.TextSpan) (*models.RatingResult, error) {
	if labels == nil {
		return nil, apperrors.NewInvalidInputError("labels must be a sequence", nil)
	}

	seen := make(map[string]bool)
	items := []models.DetectedItem{}
	raw := 0

	// OCR matches first, then labels in input order.
	for _, m := range e.text.MatchText(spans) {
		key := "text:" + m.Keyword
		if seen[key] {
			continue
		}
		seen[key] = true
		raw += m.Points
		items = append(items, newDetectedItem(m, ""))
	}

	allLabelTexts := make([]string, 0, len(labels))
	for _, label := range labels {
		allLabelTexts = append(allLabelTexts, label.Text)
	}

	for _, label := range labels {
		normalized := dictionary.Normalize(label.Text)
		if normalized == "" {
			continue
		}
		for _, m := range e.similarity.FindMatches(label.Text, label.Confidence, allLabelTexts) {
			key := "label:" + m.Keyword + ":" + normalized
			if seen[key] {
				continue
			}
			seen[key] = true
			raw += m.Points
			items = append(items, newDetectedItem(m, label.Text))
		}
	}

	adjustment, reason := e.adjuster.Adjust(items, labels)
	raw += adjustment

	final := clampScore(raw)

	return &models.RatingResult{
		Score:         final,
		Message:       verdictFor(final),
		DetectedItems: items,
		Metadata: models.RatingMetadata{
			RawScore:         raw,
			ItemsDetected:    len(items),
			LabelCount:       len(labels),
			TextSpanCount:    len(spans),
			AdjustmentReason: reason,
		},
	}, nil
}

func newDetectedItem(m models.Match, originalLabel string) models.DetectedItem {
	return models.DetectedItem{
		Keyword:       m.Keyword,
		MatchType:     m.Type,
		MatchScore:    m.MatchScore,
		Confidence:    roundConfidence(m.Confidence),
		Points:        m.Points,
		OriginalLabel: originalLabel,
	}
}

func roundConfidence(c float64) float64 {
	return math.Round(c*100) / 100
}

// clampScore bounds the raw sum symmetrically: penalties can push the sum
// negative, but the published score never leaves [0,100].
func clampScore(raw int) int {
	if raw > 100 {
		return 100
	}
	if raw < 0 {
		return 0
	}
	return raw
}
