package scoring

import (
	"strings"
	"testing"

	"go-performative-rater/pkg/models"
)

func items(keywords ...string) []models.DetectedItem {
	out := make([]models.DetectedItem, 0, len(keywords))
	for _, keyword := range keywords {
		out = append(out, models.DetectedItem{Keyword: keyword, Confidence: 0.7, Points: 10})
	}
	return out
}

func TestAdjustSynergy(t *testing.T) {
	a := NewContextAdjuster()

	tests := []struct {
		name       string
		items      []models.DetectedItem
		want       int
		wantReason string
	}{
		{
			name:       "tote bag with book",
			items:      items("tote bag", "book"),
			want:       8,
			wantReason: "tote bag with literature",
		},
		{
			name:       "labubu with tote bag",
			items:      items("labubu", "tote bag"),
			want:       7,
			wantReason: "labubu hanging off the tote",
		},
		{
			name:       "stacked pairs accumulate",
			items:      items("matcha", "vinyl record", "wired headphones"),
			want:       12 + diversityBonusTwo,
			wantReason: "matcha and vinyl together",
		},
		{
			name:  "half a pair is nothing",
			items: items("tote bag"),
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := a.Adjust(tt.items, nil)
			if got != tt.want {
				t.Errorf("Adjust() = %d, want %d", got, tt.want)
			}
			if tt.wantReason != "" && !strings.Contains(reason, tt.wantReason) {
				t.Errorf("reason = %q, want it to mention %q", reason, tt.wantReason)
			}
		})
	}
}

func TestAdjustPenalties(t *testing.T) {
	a := NewContextAdjuster()

	tests := []struct {
		name   string
		labels []models.Label
		want   int
	}{
		{
			name:   "gym context",
			labels: []models.Label{{Text: "Gym", Confidence: 0.9}, {Text: "Treadmill", Confidence: 0.8}},
			want:   -8,
		},
		{
			name:   "corporate context",
			labels: []models.Label{{Text: "office chair", Confidence: 0.9}},
			want:   -4,
		},
		{
			name:   "both contexts stack",
			labels: []models.Label{{Text: "dumbbell", Confidence: 0.9}, {Text: "cubicle", Confidence: 0.9}},
			want:   -12,
		},
		{
			name:   "neutral labels",
			labels: []models.Label{{Text: "sofa", Confidence: 0.9}},
			want:   0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := a.Adjust(nil, tt.labels)
			if got != tt.want {
				t.Errorf("Adjust() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdjustDiversityBonus(t *testing.T) {
	a := NewContextAdjuster()

	tests := []struct {
		name  string
		items []models.DetectedItem
		want  int
	}{
		{
			name:  "three categories",
			items: items("kombucha", "beanie", "chess"),
			want:  diversityBonusThree,
		},
		{
			name:  "two categories",
			items: items("kombucha", "beanie"),
			want:  diversityBonusTwo,
		},
		{
			name:  "same category twice",
			items: items("kombucha", "cold brew"),
			want:  0,
		},
		{
			name:  "uncategorized staples",
			items: items("matcha", "tote bag", "book"),
			want:  8, // only the tote-bag-and-book synergy, no diversity
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := a.Adjust(tt.items, nil)
			if got != tt.want {
				t.Errorf("Adjust() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdjustConfidenceBonus(t *testing.T) {
	a := NewContextAdjuster()

	strong := func(keyword string, confidence float64, points int) models.DetectedItem {
		return models.DetectedItem{Keyword: keyword, Confidence: confidence, Points: points}
	}

	tests := []struct {
		name  string
		items []models.DetectedItem
		want  int
	}{
		{
			name: "two strong detections",
			items: []models.DetectedItem{
				strong("labubu", 0.95, 21),
				strong("typewriter", 0.9, 18),
			},
			want: highConfidenceBonus + diversityBonusTwo,
		},
		{
			name: "one strong detection is not enough",
			items: []models.DetectedItem{
				strong("labubu", 0.95, 21),
				strong("beanie", 0.95, 5),
			},
			want: diversityBonusTwo,
		},
		{
			name: "high confidence but low weight",
			items: []models.DetectedItem{
				strong("beanie", 0.99, 5),
				strong("chess", 0.99, 7),
			},
			want: diversityBonusTwo,
		},
		{
			name: "high weight but borderline confidence",
			items: []models.DetectedItem{
				strong("labubu", 0.85, 19),
				strong("typewriter", 0.85, 17),
			},
			want: diversityBonusTwo,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := a.Adjust(tt.items, nil)
			if got != tt.want {
				t.Errorf("Adjust() = %d, want %d", got, tt.want)
			}
		})
	}
}
