// internal/nlu/semantic/classifier.go

// Package semantic ranks intents by TF-IDF cosine similarity against a
// built-in example corpus. It backs the rule classifier for phrasings the
// pattern banks never anticipated, without any model download or training
// step.
package semantic

import (
	"sort"
	"strings"

	"github.com/hydropony/junction2025-googlecloud/internal/common/logger"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/intent"
)

const (
	maxFeatures = 5000
	maxDocFreq  = 0.95
)

// Classifier precomputes vectors for every corpus example at construction.
// It implements the fallback contract of the rule classifier.
type Classifier struct {
	vectorizer *Vectorizer
	vectors    map[nlu.Intent][][]float64
	log        logger.Logger
}

func NewClassifier(log logger.Logger) *Classifier {
	vectorizer := NewVectorizer(maxFeatures, maxDocFreq)

	var corpus []string
	for _, in := range nlu.Intents {
		corpus = append(corpus, intentExamples[in]...)
	}
	vectorizer.Fit(corpus)

	vectors := make(map[nlu.Intent][][]float64, len(intentExamples))
	for in, examples := range intentExamples {
		vecs := make([][]float64, 0, len(examples))
		for _, example := range examples {
			vecs = append(vecs, vectorizer.Transform(example))
		}
		vectors[in] = vecs
	}

	log.Info("Semantic classifier initialized", map[string]interface{}{
		"examples":   len(corpus),
		"vocabulary": len(vectorizer.vocab),
	})

	return &Classifier{
		vectorizer: vectorizer,
		vectors:    vectors,
		log:        log,
	}
}

// Available reports whether similarity ranking is usable.
func (c *Classifier) Available() bool {
	return c.vectorizer != nil && len(c.vectors) > 0
}

// Rank returns the topK intents by maximum cosine similarity to any corpus
// example. The language is already folded into the mixed corpus, so it does
// not narrow the comparison. Empty text returns nil.
func (c *Classifier) Rank(text string, _ nlu.Language, topK int) []intent.Ranked {
	if !c.Available() || strings.TrimSpace(text) == "" {
		return nil
	}

	vec := c.vectorizer.Transform(text)

	ranked := make([]intent.Ranked, 0, len(c.vectors))
	for _, in := range nlu.Intents {
		best := 0.0
		for _, example := range c.vectors[in] {
			if sim := dot(vec, example); sim > best {
				best = sim
			}
		}
		if best > 1.0 {
			best = 1.0
		}
		ranked = append(ranked, intent.Ranked{Intent: in, Score: best})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
