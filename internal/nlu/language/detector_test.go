// internal/nlu/language/detector_test.go
package language

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
)

// ==========================================
// Detection Tests
// ==========================================

func TestDetect_English(t *testing.T) {
	detector := NewDetector()

	tests := []struct {
		name string
		text string
	}{
		{"simple confirmation", "Yes, I accept the replacement"},
		{"order query", "Where is my order and what is the status"},
		{"thanks phrase", "thank you so much for the delivery"},
		{"greeting", "Hello, I want to check something"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, nlu.LangEnglish, detector.Detect(tt.text))
		})
	}
}

func TestDetect_Finnish(t *testing.T) {
	detector := NewDetector()

	tests := []struct {
		name string
		text string
	}{
		{"confirmation", "Kyllä, hyväksyn korvauksen"},
		{"rejection", "Ei kiitos, en halua sitä"},
		{"order issue", "Tilaus on myöhässä ja se on ongelma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, nlu.LangFinnish, detector.Detect(tt.text))
		})
	}
}

func TestDetect_Swedish(t *testing.T) {
	detector := NewDetector()

	tests := []struct {
		name string
		text string
	}{
		{"confirmation", "Ja tack, jag vill acceptera det"},
		{"rejection", "Nej, jag vill avvisa beställningen"},
		{"delivery problem", "Det är problem med min leverans"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, nlu.LangSwedish, detector.Detect(tt.text))
		})
	}
}

// ==========================================
// Edge Cases
// ==========================================

func TestDetect_EmptyDefaultsToEnglish(t *testing.T) {
	detector := NewDetector()

	assert.Equal(t, nlu.LangEnglish, detector.Detect(""))
	assert.Equal(t, nlu.LangEnglish, detector.Detect("   "))
}

func TestDetect_WeakSignalDefaultsToEnglish(t *testing.T) {
	detector := NewDetector()

	// No indicator words, no accents.
	assert.Equal(t, nlu.LangEnglish, detector.Detect("xylophone quartz blimp"))
}

func TestDetect_AccentsAloneNeedKeywordSupport(t *testing.T) {
	detector := NewDetector()

	// Accented characters boost both Nordic languages equally; Finnish
	// keywords decide the winner.
	lang := detector.Detect("tämä tilaus on väärä")
	assert.Equal(t, nlu.LangFinnish, lang)
}

func BenchmarkDetect(b *testing.B) {
	detector := NewDetector()
	text := "Yes, I would like to confirm the delivery status of my order please"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		detector.Detect(text)
	}
}
