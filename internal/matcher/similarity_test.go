package matcher

import (
	"math"
	"testing"

	"go-performative-rater/internal/dictionary"
	"go-performative-rater/pkg/models"
)

func defaultMatcher(t *testing.T) *SimilarityMatcher {
	t.Helper()
	return NewSimilarityMatcher(dictionary.DefaultKeywords())
}

func TestFindMatchesExact(t *testing.T) {
	m := defaultMatcher(t)

	matches := m.FindMatches("Matcha", 0.9, []string{"Matcha"})
	if len(matches) != 1 {
		t.Fatalf("FindMatches() returned %d matches, want 1", len(matches))
	}
	got := matches[0]
	if got.Type != models.MatchExact {
		t.Errorf("match type = %s, want exact", got.Type)
	}
	if got.Keyword != "matcha" {
		t.Errorf("keyword = %q, want matcha", got.Keyword)
	}
	if got.MatchScore != 1.0 {
		t.Errorf("match score = %v, want 1.0", got.MatchScore)
	}
	// round(15 * 0.9)
	if got.Points != 14 {
		t.Errorf("points = %d, want 14", got.Points)
	}
}

func TestFindMatchesExactShortCircuit(t *testing.T) {
	m := defaultMatcher(t)

	// "book" is a dictionary key; no semantic or partial match may
	// accompany the exact hit.
	matches := m.FindMatches("book", 1.0, []string{"book"})
	if len(matches) != 1 {
		t.Fatalf("expected exactly one match for an exact key, got %d", len(matches))
	}
	if matches[0].Type != models.MatchExact {
		t.Errorf("match type = %s, want exact", matches[0].Type)
	}
}

func TestFindMatchesZeroConfidence(t *testing.T) {
	m := defaultMatcher(t)

	matches := m.FindMatches("book", 0, []string{"book"})
	if len(matches) != 1 {
		t.Fatalf("zero confidence should still record the match, got %d matches", len(matches))
	}
	if matches[0].Points != 0 {
		t.Errorf("points = %d, want 0", matches[0].Points)
	}
}

func TestFindMatchesEmptyLabel(t *testing.T) {
	m := defaultMatcher(t)

	for _, text := range []string{"", "   "} {
		if matches := m.FindMatches(text, 1.0, nil); matches != nil {
			t.Errorf("FindMatches(%q) = %v, want nil", text, matches)
		}
	}
}

func TestFindMatchesSemantic(t *testing.T) {
	m := defaultMatcher(t)

	tests := []struct {
		name       string
		label      string
		allLabels  []string
		wantKw     string
		wantPoints int
		wantNone   bool
	}{
		{
			name:      "bag generalizes to tote bag unconditionally",
			label:     "bag",
			allLabels: []string{"bag"},
			wantKw:    "tote bag",
			// round(12 * 1.0 * 0.8)
			wantPoints: 10,
		},
		{
			name:      "beverage needs a green or tea co-label",
			label:     "beverage",
			allLabels: []string{"beverage", "green tea"},
			wantKw:    "matcha",
			// round(15 * 1.0 * 0.7)
			wantPoints: 11,
		},
		{
			name:      "beverage alone matches nothing",
			label:     "beverage",
			allLabels: []string{"beverage"},
			wantNone:  true,
		},
		{
			name:      "toy needs plush corroboration",
			label:     "toy",
			allLabels: []string{"toy", "plush"},
			wantKw:    "labubu",
			// round(22 * 1.0 * 0.6)
			wantPoints: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := m.FindMatches(tt.label, 1.0, tt.allLabels)
			if tt.wantNone {
				if len(matches) != 0 {
					t.Fatalf("expected no matches, got %v", matches)
				}
				return
			}
			if len(matches) == 0 {
				t.Fatal("expected a semantic match, got none")
			}
			got := matches[0]
			if got.Type != models.MatchSemantic {
				t.Errorf("match type = %s, want semantic", got.Type)
			}
			if got.Keyword != tt.wantKw {
				t.Errorf("keyword = %q, want %q", got.Keyword, tt.wantKw)
			}
			if got.Points != tt.wantPoints {
				t.Errorf("points = %d, want %d", got.Points, tt.wantPoints)
			}
		})
	}
}

func TestFindMatchesPartial(t *testing.T) {
	m := defaultMatcher(t)

	matches := m.FindMatches("matchaa", 1.0, []string{"matchaa"})
	if len(matches) != 1 {
		t.Fatalf("FindMatches() returned %d matches, want 1", len(matches))
	}
	got := matches[0]
	if got.Type != models.MatchPartial {
		t.Errorf("match type = %s, want partial", got.Type)
	}
	if got.Keyword != "matcha" {
		t.Errorf("keyword = %q, want matcha", got.Keyword)
	}
	// sim = 1 - 1/7
	wantScore := 1.0 - 1.0/7.0
	if math.Abs(got.MatchScore-wantScore) > 1e-9 {
		t.Errorf("match score = %v, want %v", got.MatchScore, wantScore)
	}
	// round(15 * 1.0 * 0.857...)
	if got.Points != 13 {
		t.Errorf("points = %d, want 13", got.Points)
	}
}

func TestFindMatchesNoMatchForUnrelatedLabels(t *testing.T) {
	m := defaultMatcher(t)

	for _, text := range []string{"car", "tree", "sky", "furniture"} {
		if matches := m.FindMatches(text, 0.95, []string{"car", "tree"}); len(matches) != 0 {
			t.Errorf("FindMatches(%q) = %v, want none", text, matches)
		}
	}
}

func TestFindMatchesTopThreeCap(t *testing.T) {
	dict, err := dictionary.New([]dictionary.Entry{
		{Phrase: "abcd1", Weight: 10},
		{Phrase: "abcd2", Weight: 11},
		{Phrase: "abcd3", Weight: 12},
		{Phrase: "abcd4", Weight: 13},
	})
	if err != nil {
		t.Fatalf("dictionary.New() error = %v", err)
	}
	m := NewSimilarityMatcher(dict)

	matches := m.FindMatches("abcd0", 1.0, []string{"abcd0"})
	if len(matches) != 3 {
		t.Fatalf("cap violated: got %d matches, want 3", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i-1].MatchScore < matches[i].MatchScore {
			t.Errorf("matches not sorted by score desc at %d", i)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"matcha", "matcha", 1.0},
		{"", "", 1.0},
		{"abc", "abd", 1.0 - 1.0/3.0},
		{"car", "book", 0.0},
		// Multibyte text: the denominator counts runes, not bytes.
		{"café", "cafés", 1.0 - 1.0/5.0},
		{"über", "uber", 1.0 - 1.0/4.0},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
