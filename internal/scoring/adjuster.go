package scoring

import (
	"strings"

	"go-performative-rater/pkg/models"
)

const (
	diversityBonusThree = 6
	diversityBonusTwo   = 3

	// Flat bonus when at least two detected items are both high-confidence
	// and high-weight.
	highConfidenceBonus     = 4
	highConfidenceMinItems  = 2
	highConfidenceFloor     = 0.85
	highConfidenceMinPoints = 16
)

// synergyRule awards a bonus when every required item name is present among
// the detected items (substring match in either direction). Rules are not
// mutually exclusive; all firing bonuses accumulate.
type synergyRule struct {
	requires []string
	bonus    int
	reason   string
}

var synergyRules = []synergyRule{
	{requires: []string{"tote bag", "book"}, bonus: 8, reason: "tote bag with literature"},
	{requires: []string{"labubu", "tote bag"}, bonus: 7, reason: "labubu hanging off the tote"},
	{requires: []string{"matcha", "vinyl record"}, bonus: 6, reason: "matcha and vinyl together"},
	{requires: []string{"wired headphones", "vinyl record"}, bonus: 6, reason: "all-in on analog audio"},
	{requires: []string{"film camera", "tote bag"}, bonus: 5, reason: "film camera carried in a tote"},
}

// penaltyRule subtracts points based on the raw label set, independent of
// whether any dictionary item matched.
type penaltyRule struct {
	when    func(labelTexts []string) bool
	penalty int
	reason  string
}

var penaltyRules = []penaltyRule{
	{
		when:    labelVocabulary("gym", "dumbbell", "barbell", "treadmill", "weightlifting", "protein shake"),
		penalty: -8,
		reason:  "gym context",
	},
	{
		when:    labelVocabulary("necktie", "cubicle", "office chair", "business suit"),
		penalty: -4,
		reason:  "corporate context",
	},
}

func labelVocabulary(terms ...string) func([]string) bool {
	return func(labelTexts []string) bool {
		for _, text := range labelTexts {
			lowered := strings.ToLower(text)
			for _, term := range terms {
				if strings.Contains(lowered, term) {
					return true
				}
			}
		}
		return false
	}
}

// keywordCategories buckets the aesthetic-signal keywords for the diversity
// bonus. The three baseline staples (matcha, tote bag, book) are deliberately
// unbucketed: they are the floor of the scale, not evidence of range.
var keywordCategories = map[string]string{
	"iced coffee": "beverages",
	"cold brew":   "beverages",
	"kombucha":    "beverages",
	"blue bottle": "beverages",

	"beanie":          "fashion",
	"thrifted jacket": "fashion",
	"birkenstocks":    "fashion",
	"carabiner":       "fashion",
	"carhartt":        "fashion",

	"film camera":      "tech",
	"polaroid camera":  "tech",
	"typewriter":       "tech",
	"wired headphones": "tech",
	"flip phone":       "tech",
	"fujifilm":         "tech",

	"mason jar":   "lifestyle",
	"house plant": "lifestyle",
	"chess":       "lifestyle",
	"aesop":       "lifestyle",

	"vinyl record":    "music",
	"record player":   "music",
	"clairo":          "music",
	"mitski":          "music",
	"beabadoobee":     "music",
	"phoebe bridgers": "music",

	"sketchbook":       "literature",
	"fountain pen":     "literature",
	"moleskine":        "literature",
	"bell hooks":       "literature",
	"joan didion":      "literature",
	"sylvia plath":     "literature",
	"infinite jest":    "literature",
	"penguin classics": "literature",
	"dostoevsky":       "literature",
	"kurt vonnegut":    "literature",
	"the new yorker":   "literature",

	"labubu":      "cultural",
	"tarot cards": "cultural",
	"criterion":   "cultural",
}

// ContextAdjuster computes a bounded signed adjustment from cross-item
// context: synergy combinations, conflicting-category penalties, category
// diversity, and stacked high-confidence detections. Pure; no shared state.
type ContextAdjuster struct{}

// NewContextAdjuster creates a context adjuster.
func NewContextAdjuster() *ContextAdjuster {
	return &ContextAdjuster{}
}

// Adjust returns the total signed adjustment and a concatenated reason
// string for diagnostics. The reason plays no part in scoring.
func (a *ContextAdjuster) Adjust(items []models.DetectedItem, labels []models.Label) (int, string) {
	labelTexts := make([]string, 0, len(labels))
	for _, label := range labels {
		labelTexts = append(labelTexts, label.Text)
	}

	adjustment := 0
	var reasons []string

	for _, rule := range synergyRules {
		if synergyFires(rule, items) {
			adjustment += rule.bonus
			reasons = append(reasons, rule.reason)
		}
	}

	for _, rule := range penaltyRules {
		if rule.when(labelTexts) {
			adjustment += rule.penalty
			reasons = append(reasons, rule.reason)
		}
	}

	if bonus := diversityBonus(items); bonus > 0 {
		adjustment += bonus
		reasons = append(reasons, "category diversity")
	}

	if confidenceBonus(items) {
		adjustment += highConfidenceBonus
		reasons = append(reasons, "stacked high-confidence items")
	}

	return adjustment, strings.Join(reasons, "; ")
}

func synergyFires(rule synergyRule, items []models.DetectedItem) bool {
	for _, required := range rule.requires {
		found := false
		for _, item := range items {
			if strings.Contains(item.Keyword, required) || strings.Contains(required, item.Keyword) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func diversityBonus(items []models.DetectedItem) int {
	categories := make(map[string]bool)
	for _, item := range items {
		if category, ok := keywordCategories[item.Keyword]; ok {
			categories[category] = true
		}
	}
	switch {
	case len(categories) >= 3:
		return diversityBonusThree
	case len(categories) == 2:
		return diversityBonusTwo
	default:
		return 0
	}
}

func confidenceBonus(items []models.DetectedItem) bool {
	qualifying := 0
	for _, item := range items {
		if item.Confidence > highConfidenceFloor && item.Points >= highConfidenceMinPoints {
			qualifying++
		}
	}
	return qualifying >= highConfidenceMinItems
}
