package dictionary

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	apperrors "go-performative-rater/internal/errors"
)

// MaxWeight bounds every dictionary weight, both at load time and through
// bulk updates.
const MaxWeight = 100

// Entry pairs a phrase with its weight. Startup data is declared as a
// flat list of entries rather than a map literal so the loader can catch
// phrases defined twice with different weights instead of silently keeping
// the last one.
type Entry struct {
	Phrase string
	Weight int
}

// Dictionary is a phrase-to-weight mapping. Reads are concurrent; bulk
// updates take the write lock and are atomic (either every entry merges or
// none do).
type Dictionary struct {
	mu      sync.RWMutex
	weights map[string]int
}

// New builds a Dictionary from entries, normalizing phrases to lower-case
// trimmed form. It rejects duplicate phrases and out-of-range weights.
func New(entries []Entry) (*Dictionary, error) {
	weights := make(map[string]int, len(entries))
	for _, e := range entries {
		phrase := Normalize(e.Phrase)
		if phrase == "" {
			return nil, fmt.Errorf("dictionary entry with empty phrase")
		}
		if e.Weight < 0 || e.Weight > MaxWeight {
			return nil, fmt.Errorf("dictionary entry %q has weight %d outside [0,%d]", phrase, e.Weight, MaxWeight)
		}
		if _, exists := weights[phrase]; exists {
			return nil, fmt.Errorf("dictionary entry %q defined more than once", phrase)
		}
		weights[phrase] = e.Weight
	}
	return &Dictionary{weights: weights}, nil
}

// mustNew panics on invalid startup data; the defaults are asserted by tests.
func mustNew(entries []Entry) *Dictionary {
	d, err := New(entries)
	if err != nil {
		panic(err)
	}
	return d
}

// Normalize returns the canonical dictionary form of a phrase.
func Normalize(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}

// Weight returns the weight for a normalized phrase.
func (d *Dictionary) Weight(phrase string) (int, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	w, ok := d.weights[phrase]
	return w, ok
}

// Contains reports whether the normalized phrase is a dictionary key.
func (d *Dictionary) Contains(phrase string) bool {
	_, ok := d.Weight(phrase)
	return ok
}

// Keys returns all phrases in sorted order. Sorting keeps match iteration
// deterministic across calls.
func (d *Dictionary) Keys() []string {
	d.mu.RLock()
	keys := make([]string, 0, len(d.weights))
	for k := range d.weights {
		keys = append(keys, k)
	}
	d.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.weights)
}

// Update merges new entries into the live dictionary, normalizing keys.
// The whole batch is validated before any entry is applied; a single weight
// outside [0,100] rejects the update. Effective for subsequent calls only.
func (d *Dictionary) Update(entries map[string]int) error {
	if len(entries) == 0 {
		return apperrors.NewInvalidInputError("dictionary update requires at least one entry", nil)
	}
	normalized := make(map[string]int, len(entries))
	for phrase, weight := range entries {
		key := Normalize(phrase)
		if key == "" {
			return apperrors.NewInvalidInputError("dictionary update contains an empty phrase", nil)
		}
		if weight < 0 || weight > MaxWeight {
			return apperrors.NewInvalidInputError(
				fmt.Sprintf("weight %d for %q outside [0,%d]", weight, key, MaxWeight), nil)
		}
		normalized[key] = weight
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for key, weight := range normalized {
		d.weights[key] = weight
	}
	return nil
}
