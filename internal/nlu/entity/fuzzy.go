// internal/nlu/entity/fuzzy.go
package entity

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// ratio is the normalized similarity of two strings in [0,1].
func ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// windowRatio slides a word window the size of the candidate over the text
// and returns the best similarity. This approximates substring matching for
// misheard product names ("out milk" vs "oat milk").
func windowRatio(text, candidate string) float64 {
	words := strings.Fields(text)
	size := len(strings.Fields(candidate))
	if size == 0 || len(words) == 0 {
		return 0
	}
	if size > len(words) {
		return ratio(text, candidate)
	}

	best := 0.0
	for i := 0; i+size <= len(words); i++ {
		window := strings.Join(words[i:i+size], " ")
		if r := ratio(window, candidate); r > best {
			best = r
		}
	}
	return best
}
