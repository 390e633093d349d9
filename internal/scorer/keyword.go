// Package scorer derives heuristic attributes (energy, space, grooming,
// kid-friendliness, size and species) from breed records.
package scorer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Level is one score together with the keywords that indicate it.
type Level struct {
	Score    int      `yaml:"score"`
	Keywords []string `yaml:"keywords"`
}

// KeywordTable maps scores to keywords. Levels are checked in the order they
// are declared; the first level with a matching keyword wins. Reference holds
// levels that are documented but never matched (typically the fallback score).
type KeywordTable struct {
	Name      string  `yaml:"name"`
	Default   int     `yaml:"default"`
	Levels    []Level `yaml:"levels"`
	Reference []Level `yaml:"reference,omitempty"`
}

// Priority returns the score order the table is matched in.
func (t KeywordTable) Priority() []int {
	out := make([]int, len(t.Levels))
	for i, l := range t.Levels {
		out[i] = l.Score
	}
	return out
}

// Normalize prepares free text for keyword matching: NFC composition (so
// decomposed Vietnamese diacritics still match), lower case, trimmed.
func Normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(norm.NFC.String(text)))
}

// Classify returns the score of the first level, in declared order, that has
// a keyword contained in text. It returns the table default when nothing
// matches. Text and keywords both go through Normalize, so decomposed
// diacritics (NFD input) match their composed keywords.
func Classify(text string, table KeywordTable) int {
	s := Normalize(text)
	if s == "" {
		return table.Default
	}
	for _, level := range table.Levels {
		for _, kw := range level.Keywords {
			kw = Normalize(kw)
			if kw != "" && strings.Contains(s, kw) {
				return level.Score
			}
		}
	}
	return table.Default
}
