// internal/nlu/language/detector.go

// Package language detects the input language of a transcript.
//
// Detection is deterministic: a fixed bonus for accented characters plus
// weighted counts of common-word indicators, normalized by utterance length.
// There is no learned state, so results are fully reproducible.
package language

import (
	"strings"
	"unicode"

	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
)

const (
	accentedChars  = "äöåÄÖÅ"
	accentBonus    = 2.0
	indicatorScore = 0.5
	minSignal      = 0.1
)

var indicatorWords = map[nlu.Language]map[string]struct{}{
	nlu.LangEnglish: wordSet(
		"yes", "no", "ok", "okay", "accept", "reject", "confirm", "decline",
		"hello", "hi", "thanks", "please", "sorry", "problem", "issue",
		"delivery", "order", "status", "feedback",
		"that", "this", "would", "could", "should", "will", "can", "want",
		"need", "like",
	),
	nlu.LangFinnish: wordSet(
		"kyllä", "ei", "okei", "hyväksy", "hylkää", "vahvista", "kiitos",
		"hei", "moi", "anteeksi", "ongelma", "toimitus", "tilaus", "tila",
		"palautetta",
		"se", "tämä", "tuo", "voisi", "voisit", "haluan", "tarvitsen",
		"pitäisi",
	),
	nlu.LangSwedish: wordSet(
		"ja", "nej", "okej", "acceptera", "avvisa", "bekräfta", "tack",
		"hej", "hejdå", "ursäkta", "problem", "leverans", "beställning",
		"status", "feedback",
		"det", "den", "skulle", "kunde", "vill", "behöver", "gillar",
	),
}

var indicatorPhrases = map[nlu.Language][]string{
	nlu.LangEnglish: {"thank you"},
}

// scanOrder fixes tie-breaking: English wins equal scores.
var scanOrder = []nlu.Language{nlu.LangEnglish, nlu.LangFinnish, nlu.LangSwedish}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Detector scores text against per-language character and keyword signals.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the best-guess language for the text. Empty input or a
// weak signal falls back to English.
func (d *Detector) Detect(text string) nlu.Language {
	if strings.TrimSpace(text) == "" {
		return nlu.LangEnglish
	}

	scores := d.score(text)

	best := nlu.LangEnglish
	bestScore := scores[nlu.LangEnglish]
	for _, lang := range scanOrder[1:] {
		if scores[lang] > bestScore {
			best = lang
			bestScore = scores[lang]
		}
	}

	if bestScore < minSignal {
		return nlu.LangEnglish
	}
	return best
}

func (d *Detector) score(text string) map[nlu.Language]float64 {
	scores := map[nlu.Language]float64{
		nlu.LangEnglish: 0,
		nlu.LangFinnish: 0,
		nlu.LangSwedish: 0,
	}

	// Nordic accents are shared between Finnish and Swedish; keyword counts
	// break the tie between the two.
	if strings.ContainsAny(text, accentedChars) {
		scores[nlu.LangFinnish] += accentBonus
		scores[nlu.LangSwedish] += accentBonus
	}

	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	for lang, words := range indicatorWords {
		for _, token := range tokens {
			if _, ok := words[token]; ok {
				scores[lang] += indicatorScore
			}
		}
		for _, phrase := range indicatorPhrases[lang] {
			scores[lang] += float64(strings.Count(lower, phrase)) * indicatorScore
		}
	}

	// Normalize by utterance length so short confirmations still register.
	wordCount := len(strings.Fields(text))
	if wordCount > 0 {
		for lang := range scores {
			scores[lang] /= float64(wordCount)
		}
	}

	return scores
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
