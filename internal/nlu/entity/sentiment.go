// internal/nlu/entity/sentiment.go
package entity

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
)

// PolarityScorer produces a lexicon-based polarity in [-1,1]. The second
// return reports whether the scorer could handle the text.
type PolarityScorer interface {
	Polarity(text string) (float64, bool)
}

type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer wraps the VADER sentiment lexicon. English only; other
// languages fall back to the pattern scorer.
func NewVaderScorer() PolarityScorer {
	return &vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *vaderScorer) Polarity(text string) (float64, bool) {
	return v.analyzer.PolarityScores(text).Compound, true
}

var positiveWords = map[nlu.Language][]string{
	nlu.LangEnglish: {
		"yes", "yeah", "yep", "good", "great", "excellent", "perfect",
		"wonderful", "amazing", "thanks", "thank you", "thank", "appreciate",
		"agree", "agreed", "accept", "accepted", "fine", "ok", "okay", "sure",
		"love", "liked", "happy", "pleased", "satisfied", "received",
		"everything", "all good", "works", "sounds good", "please send",
		"please do", "go ahead", "proceed", "that works", "i'll take",
		"i will take", "i want", "i'd like", "i would like", "send it",
		"send me", "give me",
	},
	nlu.LangFinnish: {
		"kyllä", "joo", "hyvä", "erinomainen", "kiitos", "sopii", "okei",
		"hyväksyn",
	},
	nlu.LangSwedish: {
		"ja", "bra", "utmärkt", "tack", "okej", "acceptera", "godkänd",
	},
}

var negativeWords = map[nlu.Language][]string{
	nlu.LangEnglish: {
		"no", "nope", "nah", "bad", "terrible", "awful", "horrible", "wrong",
		"missing", "problem", "issue", "complaint", "reject", "refuse",
		"decline", "don't", "won't", "can't", "disappointed", "angry",
		"upset", "frustrated", "unhappy", "not interested", "not good",
	},
	nlu.LangFinnish: {"ei", "huono", "ongelma", "valitus", "hylkään", "kieltäydyn"},
	nlu.LangSwedish: {"nej", "dålig", "problem", "klagomål", "avvisa"},
}

var positivePhrases = map[nlu.Language][]string{
	nlu.LangEnglish: {
		"i accept", "i agree", "that works", "sounds good", "go ahead",
		"all good", "thank you", "please send", "please do", "send it",
		"send me", "give me", "yes please", "yes i'll", "yes i will",
		"i'll take", "i will take", "i want", "i'd like", "i would like",
	},
	nlu.LangFinnish: {"sama käy", "sopii mulle", "lähetä", "ota se"},
	nlu.LangSwedish: {"det fungerar", "det låter bra", "skicka", "ge mig", "jag tar"},
}

var negativePhrases = map[nlu.Language][]string{
	nlu.LangEnglish: {
		"don't want", "don't need", "don't like", "don't accept",
		"no thanks", "not interested",
	},
	nlu.LangFinnish: {"en halua", "ei kiitos"},
	nlu.LangSwedish: {"vill inte", "inte intresserad"},
}

var sentimentNegation = map[nlu.Language][]string{
	nlu.LangEnglish: {
		`no|not|don'?t|doesn'?t|didn'?t|won'?t|can'?t|couldn'?t|shouldn'?t|wouldn'?t|isn'?t|aren'?t|wasn'?t|weren'?t`,
		`never|nothing|nobody|nowhere|neither|nor`,
	},
	nlu.LangFinnish: {
		`ei|en|et|emme|ette|eivät|ei ole|ei ollut`,
		`ei koskaan|ei mitään|ei kukaan`,
	},
	nlu.LangSwedish: {
		`inte|ej|aldrig|ingenting|ingen`,
		`är inte|var inte|skulle inte`,
	},
}

var questionPrefixes = []string{
	"do you", "can you", "will you", "are you", "is it", "is there",
	"what", "when", "where", "how", "why", "which",
}

var cancelWords = []string{
	"cancel", "stop", "remove", "delete", "refund", "return", "reject",
	"decline", "refuse",
}

// Intents that are informational requests rather than emotional expressions.
var neutralIntents = map[nlu.Intent]struct{}{
	nlu.IntentRequestCallback:   {},
	nlu.IntentQueryOrderStatus:  {},
	nlu.IntentQueryProducts:     {},
	nlu.IntentQuerySubstitution: {},
}

type sentimentRules struct {
	positive map[nlu.Language][]*regexp.Regexp
	negative map[nlu.Language][]*regexp.Regexp
	negation map[nlu.Language][]*regexp.Regexp
}

func compileSentimentRules() sentimentRules {
	compileWords := func(table map[nlu.Language][]string) map[nlu.Language][]*regexp.Regexp {
		out := make(map[nlu.Language][]*regexp.Regexp, len(table))
		for lang, words := range table {
			res := make([]*regexp.Regexp, 0, len(words))
			for _, word := range words {
				res = append(res, regexp.MustCompile(`(?i)`+nlu.Word(regexp.QuoteMeta(word))))
			}
			out[lang] = res
		}
		return out
	}

	negation := make(map[nlu.Language][]*regexp.Regexp, len(sentimentNegation))
	for lang, exprs := range sentimentNegation {
		res := make([]*regexp.Regexp, 0, len(exprs))
		for _, expr := range exprs {
			res = append(res, regexp.MustCompile(`(?i)`+nlu.Word(expr)))
		}
		negation[lang] = res
	}

	return sentimentRules{
		positive: compileWords(positiveWords),
		negative: compileWords(negativeWords),
		negation: negation,
	}
}

func (e *Extractor) extractSentiment(text string, lang nlu.Language, detected nlu.Intent) Sentiment {
	lower := strings.ToLower(text)
	isQuestion := isQuestion(lower)
	hasCancel := containsAny(lower, cancelWords)

	pattern := e.patternSentiment(text, lang, detected)

	if lang != nlu.LangEnglish || e.scorer == nil {
		return pattern
	}
	score, ok := e.scorer.Polarity(text)
	if !ok {
		return pattern
	}

	// Lexicon score overrides for conversational context.
	if isQuestion {
		score = 0.0
	}
	if hasCancel && score > 0 {
		score = -0.3
	}
	if detected == nlu.IntentReportIssue && score > -0.2 {
		score = -0.4
	}

	var lexPolarity string
	var lexConfidence float64
	switch {
	case score > 0.05:
		lexPolarity = PolarityPositive
		lexConfidence = math.Min(math.Abs(score), 1.0)
	case score < -0.05:
		lexPolarity = PolarityNegative
		lexConfidence = math.Min(math.Abs(score), 1.0)
	default:
		lexPolarity = PolarityNeutral
		lexConfidence = 0.3
	}

	if e.hasNegation(lower, lang) && lexPolarity == PolarityPositive {
		lexPolarity = PolarityNegative
		lexConfidence = math.Min(lexConfidence+0.2, 1.0)
	}

	switch {
	case pattern.Polarity == lexPolarity:
		// Agreement between methods boosts confidence.
		return Sentiment{
			Polarity:   lexPolarity,
			Confidence: math.Min((lexConfidence*0.6+pattern.Confidence*0.4)*1.2, 1.0),
			Method:     "lexicon+pattern",
		}
	case pattern.Confidence > 0.6:
		return Sentiment{Polarity: pattern.Polarity, Confidence: pattern.Confidence, Method: "lexicon+pattern"}
	default:
		return Sentiment{Polarity: lexPolarity, Confidence: lexConfidence, Method: "lexicon+pattern"}
	}
}

func (e *Extractor) patternSentiment(text string, lang nlu.Language, detected nlu.Intent) Sentiment {
	lower := strings.ToLower(text)
	hasNegation := e.hasNegation(lower, lang)

	positiveCount := countMatches(lower, langRules(e.sentiment.positive, lang))
	negativeCount := countMatches(lower, langRules(e.sentiment.negative, lang))

	// Phrases are stronger signals than single words.
	for _, phrase := range langPhrases(positivePhrases, lang) {
		if strings.Contains(lower, phrase) {
			positiveCount += 2
		}
	}
	for _, phrase := range langPhrases(negativePhrases, lang) {
		if strings.Contains(lower, phrase) {
			negativeCount += 2
		}
	}

	if hasNegation {
		if positiveCount > 0 {
			negativeCount += positiveCount
			positiveCount = 0
		} else if negativeCount == 0 {
			negativeCount = 1
		}
	}

	if containsAny(lower, cancelWords) && positiveCount > 0 {
		negativeCount += positiveCount
		positiveCount = 0
	}

	// Questions are neutral unless the sentiment is strong.
	if isQuestion(lower) && negativeCount <= 2 && positiveCount <= 2 {
		return Sentiment{Polarity: PolarityNeutral, Confidence: 0.5, Method: "pattern"}
	}

	if _, ok := neutralIntents[detected]; ok && negativeCount <= 1 && positiveCount <= 1 {
		return Sentiment{Polarity: PolarityNeutral, Confidence: 0.5, Method: "pattern+context"}
	}

	// Reporting a problem is negative by definition.
	if detected == nlu.IntentReportIssue {
		confidence := math.Max(0.6, math.Min(0.4+float64(negativeCount)*0.15, 0.95))
		return Sentiment{Polarity: PolarityNegative, Confidence: confidence, Method: "pattern+context"}
	}

	switch {
	case negativeCount > positiveCount && negativeCount > 0:
		return Sentiment{
			Polarity:   PolarityNegative,
			Confidence: math.Min(0.4+float64(negativeCount)*0.15, 0.95),
			Method:     "pattern",
		}
	case positiveCount > negativeCount && positiveCount > 0:
		return Sentiment{
			Polarity:   PolarityPositive,
			Confidence: math.Min(0.4+float64(positiveCount)*0.15, 0.95),
			Method:     "pattern",
		}
	default:
		return Sentiment{Polarity: PolarityNeutral, Confidence: 0.5, Method: "pattern"}
	}
}

func (e *Extractor) hasNegation(lower string, lang nlu.Language) bool {
	for _, re := range langRules(e.sentiment.negation, lang) {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func isQuestion(lower string) bool {
	trimmed := strings.TrimSpace(lower)
	if strings.HasSuffix(trimmed, "?") {
		return true
	}
	for _, prefix := range questionPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func countMatches(lower string, rules []*regexp.Regexp) int {
	count := 0
	for _, re := range rules {
		if re.MatchString(lower) {
			count++
		}
	}
	return count
}

func langRules(table map[nlu.Language][]*regexp.Regexp, lang nlu.Language) []*regexp.Regexp {
	if rules, ok := table[lang]; ok {
		return rules
	}
	return table[nlu.LangEnglish]
}

func langPhrases(table map[nlu.Language][]string, lang nlu.Language) []string {
	if phrases, ok := table[lang]; ok {
		return phrases
	}
	return table[nlu.LangEnglish]
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
