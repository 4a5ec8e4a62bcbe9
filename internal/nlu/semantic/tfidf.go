// internal/nlu/semantic/tfidf.go
package semantic

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Vectorizer turns text into L2-normalized TF-IDF vectors over word
// unigrams and bigrams. Fit builds the vocabulary and IDF weights once;
// Transform is then read-only and safe for concurrent use.
type Vectorizer struct {
	maxFeatures int
	maxDocFreq  float64

	vocab map[string]int
	idf   []float64
}

func NewVectorizer(maxFeatures int, maxDocFreq float64) *Vectorizer {
	return &Vectorizer{
		maxFeatures: maxFeatures,
		maxDocFreq:  maxDocFreq,
	}
}

// terms extracts lowercase unigram and bigram terms from text.
func terms(text string) []string {
	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)

	out := make([]string, 0, len(tokens)*2)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// Fit learns the vocabulary and smoothed IDF weights from the corpus.
// Terms appearing in more than maxDocFreq of the documents are discarded,
// and the vocabulary is capped at maxFeatures by corpus frequency.
func (v *Vectorizer) Fit(docs []string) {
	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range terms(doc) {
			corpusFreq[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	dfCap := int(v.maxDocFreq * float64(len(docs)))
	kept := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df <= dfCap {
			kept = append(kept, term)
		}
	}

	if v.maxFeatures > 0 && len(kept) > v.maxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if corpusFreq[kept[i]] != corpusFreq[kept[j]] {
				return corpusFreq[kept[i]] > corpusFreq[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.maxFeatures]
	}
	sort.Strings(kept)

	v.vocab = make(map[string]int, len(kept))
	v.idf = make([]float64, len(kept))
	n := float64(len(docs))
	for i, term := range kept {
		v.vocab[term] = i
		// Smoothed IDF keeps weights finite for terms present in every doc.
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
}

// Transform vectorizes one text. Unknown terms are ignored; text with no
// known terms yields the zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, term := range terms(text) {
		if i, ok := v.vocab[term]; ok {
			vec[i] += v.idf[i]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// dot is cosine similarity for L2-normalized vectors.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
