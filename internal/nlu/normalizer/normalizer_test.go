// internal/nlu/normalizer/normalizer_test.go
package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
)

// ==========================================
// Normalization Steps
// ==========================================

func TestNormalize_Whitespace(t *testing.T) {
	n := NewNormalizer()

	assert.Equal(t, "hello there", n.Normalize("  hello   there  ", nlu.LangEnglish))
	assert.Equal(t, "one line", n.Normalize("one\n\tline", nlu.LangEnglish))
}

func TestNormalize_RemovesFillers(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name string
		text string
		lang nlu.Language
		want string
	}{
		{"english um/uh", "um I uh want the milk", nlu.LangEnglish, "I want the milk"},
		{"english repeated filler", "um um I want the milk", nlu.LangEnglish, "I want the milk"},
		{"finnish tuota", "tuota haluan maitoa", nlu.LangFinnish, "haluan maitoa"},
		{"swedish liksom", "jag vill liksom ha mjölk", nlu.LangSwedish, "jag vill ha mjölk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.text, tt.lang))
		})
	}
}

func TestNormalize_ExpandsContractions(t *testing.T) {
	n := NewNormalizer()

	assert.Equal(t, "i do not want it", n.Normalize("i don't want it", nlu.LangEnglish))
	assert.Equal(t, "i will accept that", n.Normalize("i'll accept that", nlu.LangEnglish))
	assert.Equal(t, "it is not here", n.Normalize("it's not here", nlu.LangEnglish))
}

func TestNormalize_ContractionsEnglishOnly(t *testing.T) {
	n := NewNormalizer()

	// Finnish text with an apostrophe sequence stays untouched.
	assert.Equal(t, "can't", n.Normalize("can't", nlu.LangFinnish))
}

func TestNormalize_TranscriptionFixes(t *testing.T) {
	n := NewNormalizer()

	assert.Equal(t, "the code is # 123", n.Normalize("the code is hash 123", nlu.LangEnglish))
	assert.Equal(t, "# 42", n.Normalize("number sign 42", nlu.LangEnglish))
}

// ==========================================
// Idempotence
// ==========================================

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer()

	inputs := []struct {
		text string
		lang nlu.Language
	}{
		{"um I don't   want uh the replacement", nlu.LangEnglish},
		{"tuota kyllä, hyväksyn korvauksen", nlu.LangFinnish},
		{"jag vill typ inte ha den", nlu.LangSwedish},
		{"", nlu.LangEnglish},
		{"plain text with no changes needed", nlu.LangFinnish},
	}

	for _, in := range inputs {
		once := n.Normalize(in.text, in.lang)
		twice := n.Normalize(once, in.lang)
		assert.Equal(t, once, twice, "normalize must be idempotent for %q", in.text)
	}
}

func TestNormalize_Empty(t *testing.T) {
	n := NewNormalizer()

	assert.Equal(t, "", n.Normalize("", nlu.LangEnglish))
}

// ==========================================
// Spoken Numbers
// ==========================================

func TestNormalizeSpokenNumbers(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name string
		text string
		lang nlu.Language
		want string
	}{
		{"english single word", "I want three apples", nlu.LangEnglish, "I want 3 apples"},
		{"english compound", "a couple of bananas", nlu.LangEnglish, "2 of bananas"},
		{"finnish", "kaksi maitoa", nlu.LangFinnish, "2 maitoa"},
		{"swedish", "två flaskor", nlu.LangSwedish, "2 flaskor"},
		{"no numbers", "no numerals here", nlu.LangFinnish, "no numerals here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.NormalizeSpokenNumbers(tt.text, tt.lang))
		})
	}
}

func BenchmarkNormalize(b *testing.B) {
	n := NewNormalizer()
	text := "um well I don't actually want uh the replacement you know"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n.Normalize(text, nlu.LangEnglish)
	}
}
