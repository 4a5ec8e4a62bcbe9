// internal/nlu/semantic/classifier_test.go
package semantic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydropony/junction2025-googlecloud/internal/common/logger"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return NewClassifier(logger.NewTestLogger(t))
}

// ==========================================
// Vectorizer
// ==========================================

func TestVectorizer_TransformNormalized(t *testing.T) {
	v := NewVectorizer(5000, 0.95)
	v.Fit([]string{"milk is missing", "where is my order", "cancel my order"})

	vec := v.Transform("where is my order")

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestVectorizer_UnknownTermsYieldZeroVector(t *testing.T) {
	v := NewVectorizer(5000, 0.95)
	v.Fit([]string{"milk is missing", "where is my order"})

	vec := v.Transform("xylophone quartz")
	for _, x := range vec {
		assert.Zero(t, x)
	}
}

func TestVectorizer_MaxFeaturesCapsVocabulary(t *testing.T) {
	v := NewVectorizer(3, 0.95)
	v.Fit([]string{"one two three four five", "one two six seven"})

	assert.Len(t, v.vocab, 3)
}

// ==========================================
// Ranking
// ==========================================

func TestRank_ExactCorpusExample(t *testing.T) {
	c := newTestClassifier(t)

	ranked := c.Rank("Yes, I accept the replacement", nlu.LangEnglish, 3)
	require.NotEmpty(t, ranked)

	assert.Equal(t, nlu.IntentConfirmSubstitution, ranked[0].Intent)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-6)
}

func TestRank_Paraphrase(t *testing.T) {
	c := newTestClassifier(t)

	ranked := c.Rank("i would like to give some feedback", nlu.LangEnglish, 1)
	require.Len(t, ranked, 1)
	assert.Equal(t, nlu.IntentProvideFeedback, ranked[0].Intent)
}

func TestRank_MultilingualCorpus(t *testing.T) {
	c := newTestClassifier(t)

	ranked := c.Rank("haluan antaa palautetta", nlu.LangFinnish, 1)
	require.Len(t, ranked, 1)
	assert.Equal(t, nlu.IntentProvideFeedback, ranked[0].Intent)
}

func TestRank_TopKLimit(t *testing.T) {
	c := newTestClassifier(t)

	ranked := c.Rank("where is my order", nlu.LangEnglish, 3)
	assert.Len(t, ranked, 3)
	assert.Equal(t, nlu.IntentQueryOrderStatus, ranked[0].Intent)

	// Scores are sorted descending.
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRank_EmptyText(t *testing.T) {
	c := newTestClassifier(t)

	assert.Nil(t, c.Rank("", nlu.LangEnglish, 3))
	assert.Nil(t, c.Rank("   ", nlu.LangEnglish, 3))
}

func TestRank_ScoresBounded(t *testing.T) {
	c := newTestClassifier(t)

	ranked := c.Rank("thank you so much for the help", nlu.LangEnglish, 0)
	require.NotEmpty(t, ranked)

	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}

func TestAvailable(t *testing.T) {
	c := newTestClassifier(t)
	assert.True(t, c.Available())
}

func BenchmarkRank(b *testing.B) {
	c := NewClassifier(logger.NewNoOpLogger())
	text := "i think something went wrong with my grocery delivery"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Rank(text, nlu.LangEnglish, 3)
	}
}
