package matcher

import "strings"

// semanticTarget maps a generic vision label to a specific dictionary
// keyword. baseScore discounts the match relative to an exact hit; when is
// an optional co-occurrence predicate over every label text in the request.
type semanticTarget struct {
	keyword   string
	baseScore float64
	when      func(allLabelTexts []string) bool
}

// anyLabelContains builds a predicate that passes when any label in the set
// contains one of the given terms (case-insensitive).
func anyLabelContains(terms ...string) func([]string) bool {
	return func(allLabelTexts []string) bool {
		for _, text := range allLabelTexts {
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

// semanticTable is the curated generalization table. Vision providers tend
// to return broad labels ("beverage", "bag") where the interesting signal
// is the specific item; predicates keep the narrowing honest by requiring
// corroborating labels.
var semanticTable = map[string][]semanticTarget{
	"beverage": {
		{keyword: "matcha", baseScore: 0.7, when: anyLabelContains("green", "tea")},
		{keyword: "iced coffee", baseScore: 0.6, when: anyLabelContains("coffee", "ice")},
	},
	"drink": {
		{keyword: "matcha", baseScore: 0.65, when: anyLabelContains("green", "tea")},
		{keyword: "cold brew", baseScore: 0.6, when: anyLabelContains("coffee")},
	},
	"bag": {
		{keyword: "tote bag", baseScore: 0.8},
	},
	"handbag": {
		{keyword: "tote bag", baseScore: 0.7},
	},
	"toy": {
		{keyword: "labubu", baseScore: 0.6, when: anyLabelContains("plush", "doll", "keychain")},
	},
	"camera": {
		{keyword: "film camera", baseScore: 0.75},
	},
	"headphones": {
		{keyword: "wired headphones", baseScore: 0.7, when: anyLabelContains("wire", "cord", "cable")},
	},
	"publication": {
		{keyword: "book", baseScore: 0.7},
	},
	"novel": {
		{keyword: "book", baseScore: 0.85},
	},
	"plant": {
		{keyword: "house plant", baseScore: 0.8},
	},
	"houseplant": {
		{keyword: "house plant", baseScore: 0.9},
	},
	"jar": {
		{keyword: "mason jar", baseScore: 0.7},
	},
	"notebook": {
		{keyword: "sketchbook", baseScore: 0.6},
	},
	"sandal": {
		{keyword: "birkenstocks", baseScore: 0.7},
	},
	"turntable": {
		{keyword: "record player", baseScore: 0.85},
	},
}
