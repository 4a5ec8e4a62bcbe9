// internal/nlu/entity/sentiment_test.go
package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydropony/junction2025-googlecloud/internal/catalog"
	"github.com/hydropony/junction2025-googlecloud/internal/common/logger"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
)

// fixedScorer returns a canned polarity, standing in for the lexicon.
type fixedScorer struct {
	score float64
}

func (f fixedScorer) Polarity(string) (float64, bool) { return f.score, true }

func patternOnlyExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(catalog.New(nil, logger.NewTestLogger(t)), nil, DefaultOptions())
}

// ==========================================
// Pattern Sentiment
// ==========================================

func TestSentiment_Positive(t *testing.T) {
	e := patternOnlyExtractor(t)

	s := e.extractSentiment("yes, that works, thank you", nlu.LangEnglish, nlu.IntentUnknown)
	assert.Equal(t, PolarityPositive, s.Polarity)
	assert.Greater(t, s.Confidence, 0.5)
}

func TestSentiment_Negative(t *testing.T) {
	e := patternOnlyExtractor(t)

	s := e.extractSentiment("this is terrible, my order is wrong", nlu.LangEnglish, nlu.IntentUnknown)
	assert.Equal(t, PolarityNegative, s.Polarity)
}

func TestSentiment_NegationFlipsPositive(t *testing.T) {
	e := patternOnlyExtractor(t)

	s := e.extractSentiment("i do not accept that", nlu.LangEnglish, nlu.IntentUnknown)
	assert.Equal(t, PolarityNegative, s.Polarity)
}

func TestSentiment_CancelOverridesPositive(t *testing.T) {
	e := patternOnlyExtractor(t)

	s := e.extractSentiment("great, please cancel everything", nlu.LangEnglish, nlu.IntentUnknown)
	assert.Equal(t, PolarityNegative, s.Polarity)
}

func TestSentiment_QuestionsAreNeutral(t *testing.T) {
	e := patternOnlyExtractor(t)

	tests := []string{
		"where is my order?",
		"do you have oat milk",
		"can you deliver tomorrow",
	}
	for _, text := range tests {
		s := e.extractSentiment(text, nlu.LangEnglish, nlu.IntentUnknown)
		assert.Equal(t, PolarityNeutral, s.Polarity, "text: %s", text)
		assert.InDelta(t, 0.5, s.Confidence, 1e-9)
	}
}

func TestSentiment_ReportIssueAlwaysNegative(t *testing.T) {
	e := patternOnlyExtractor(t)

	// Even a politely phrased report stays negative.
	s := e.extractSentiment("hello, two items did not arrive", nlu.LangEnglish, nlu.IntentReportIssue)
	assert.Equal(t, PolarityNegative, s.Polarity)
	assert.GreaterOrEqual(t, s.Confidence, 0.6)
}

func TestSentiment_InformationalIntentsNeutral(t *testing.T) {
	e := patternOnlyExtractor(t)

	s := e.extractSentiment("i need the order status", nlu.LangEnglish, nlu.IntentQueryOrderStatus)
	assert.Equal(t, PolarityNeutral, s.Polarity)
	assert.Equal(t, "pattern+context", s.Method)
}

func TestSentiment_Finnish(t *testing.T) {
	e := patternOnlyExtractor(t)

	s := e.extractSentiment("kyllä kiitos, sopii hyvin", nlu.LangFinnish, nlu.IntentUnknown)
	assert.Equal(t, PolarityPositive, s.Polarity)
}

func TestSentiment_Swedish(t *testing.T) {
	e := patternOnlyExtractor(t)

	s := e.extractSentiment("nej, det är dålig service", nlu.LangSwedish, nlu.IntentUnknown)
	assert.Equal(t, PolarityNegative, s.Polarity)
}

// ==========================================
// Lexicon Combination
// ==========================================

func TestSentiment_LexiconAgreementBoosts(t *testing.T) {
	e := NewExtractor(catalog.New(nil, logger.NewNoOpLogger()), fixedScorer{score: 0.8}, DefaultOptions())

	s := e.extractSentiment("yes, that works, thank you", nlu.LangEnglish, nlu.IntentUnknown)
	assert.Equal(t, PolarityPositive, s.Polarity)
	assert.Equal(t, "lexicon+pattern", s.Method)
	assert.Greater(t, s.Confidence, 0.7)
}

func TestSentiment_LexiconSkippedForFinnish(t *testing.T) {
	e := NewExtractor(catalog.New(nil, logger.NewNoOpLogger()), fixedScorer{score: 0.9}, DefaultOptions())

	s := e.extractSentiment("kyllä kiitos", nlu.LangFinnish, nlu.IntentUnknown)
	assert.Equal(t, "pattern", s.Method)
}

func TestSentiment_ConfidentPatternBeatsLexicon(t *testing.T) {
	// Lexicon says positive, but the pattern scorer is confident the other
	// way; pattern wins.
	e := NewExtractor(catalog.New(nil, logger.NewNoOpLogger()), fixedScorer{score: 0.9}, DefaultOptions())

	s := e.extractSentiment("terrible, awful, wrong and missing items everywhere", nlu.LangEnglish, nlu.IntentUnknown)
	assert.Equal(t, PolarityNegative, s.Polarity)
}
