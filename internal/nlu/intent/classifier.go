// internal/nlu/intent/classifier.go

// Package intent scores utterances against per-language pattern banks and
// resolves the best-matching intent with a calibrated confidence. A semantic
// fallback can be plugged in for utterances the rules cannot place.
package intent

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
)

const (
	matchWeight   = 0.3
	presenceBonus = 0.5
	seedScore     = 0.7
	maxConfidence = 0.95
	minConfidence = 0.5
	noMatchScore  = 0.3
)

// Options controls the hybrid rule/semantic resolution.
type Options struct {
	UseSemanticFallback bool
	SemanticThreshold   float64
	SemanticWeight      float64
}

func DefaultOptions() Options {
	return Options{
		UseSemanticFallback: true,
		SemanticThreshold:   0.5,
		SemanticWeight:      0.8,
	}
}

// Ranked is one semantic candidate with its similarity score.
type Ranked struct {
	Intent nlu.Intent
	Score  float64
}

// Fallback ranks intents by semantic similarity when rule confidence is low.
type Fallback interface {
	Available() bool
	Rank(text string, lang nlu.Language, topK int) []Ranked
}

type noFallback struct{}

func (noFallback) Available() bool                         { return false }
func (noFallback) Rank(string, nlu.Language, int) []Ranked { return nil }

// NoFallback returns a Fallback that is never available.
func NoFallback() Fallback { return noFallback{} }

// Negation words checked by substring containment, matching spoken phrasing
// like "ei ole" and "är inte".
var negationWords = map[nlu.Language][]string{
	nlu.LangEnglish: {
		"no", "not", "don't", "doesn't", "didn't", "won't", "can't",
		"couldn't", "shouldn't", "wouldn't", "isn't", "aren't", "wasn't",
		"weren't", "never", "nothing", "nobody",
	},
	nlu.LangFinnish: {
		"ei", "en", "et", "emme", "ette", "eivät", "ei ole", "ei ollut",
		"ei koskaan",
	},
	nlu.LangSwedish: {
		"inte", "ej", "aldrig", "ingenting", "ingen", "är inte", "var inte",
	},
}

var (
	callbackPhrases = []string{
		"speak to", "talk to", "need to speak", "want to speak", "someone",
		"human", "person", "agent",
	}
	discrepancyPhrases = []string{
		"only", "not", "should be", "expected", "but got", "but received",
		"instead of", "quantity", "amount", "number",
	}
	issuePhrases = []string{
		"there is no", "there's no", "there are no", "not in my order",
		"missing from my order", "in my order there is no",
	}
	orderReferencePhrases = []string{"in my order", "from my order"}
	timeWords             = []string{
		"tomorrow", "today", "monday", "tuesday", "wednesday", "thursday",
		"friday", "saturday", "sunday", "next week",
	}
	needWords = []string{
		"need", "want", "have to", "must", "should", "get", "receive",
	}
	postIssueIndicators = []string{
		"didn't receive", "did not receive", "not receive", "missing",
		"didn't get", "there is no", "there's no", "not in my order",
		"missing from my order",
	}
	bareYes = []string{"yes", "yeah", "yep", "ok", "okay", "sure"}
	bareNo  = []string{"no", "nope", "nah"}
)

var digitsRe = regexp.MustCompile(`\b\d+\b`)

// Classifier holds the compiled pattern banks. Construction compiles every
// pattern once; the classifier is immutable afterwards and safe for
// concurrent use.
type Classifier struct {
	opts     Options
	fallback Fallback
	patterns map[nlu.Intent]map[nlu.Language][]*regexp.Regexp
}

func NewClassifier(opts Options, fallback Fallback) *Classifier {
	if fallback == nil {
		fallback = NoFallback()
	}

	patterns := make(map[nlu.Intent]map[nlu.Language][]*regexp.Regexp, len(nlu.Intents))
	for _, in := range nlu.Intents {
		spec := specFor(in)
		patterns[in] = map[nlu.Language][]*regexp.Regexp{
			nlu.LangEnglish: compileAll(spec.en),
			nlu.LangFinnish: compileAll(spec.fi),
			nlu.LangSwedish: compileAll(spec.sv),
		}
	}

	return &Classifier{opts: opts, fallback: fallback, patterns: patterns}
}

func compileAll(exprs []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+expr))
	}
	return compiled
}

// Classify resolves the intent and confidence for normalized text. The
// context map carries conversation stage hints that reweight ambiguous
// utterances ("yes" during a substitution proposal).
func (c *Classifier) Classify(text string, lang nlu.Language, context map[string]interface{}) (nlu.Intent, float64) {
	if strings.TrimSpace(text) == "" {
		return nlu.IntentUnknown, 0.0
	}

	lower := strings.ToLower(text)

	scores := c.patternScores(lower, lang)
	c.applyAdjustments(scores, lower, lang, context)

	best, confidence, normalized := resolve(scores, lower)

	if !c.opts.UseSemanticFallback || !c.fallback.Available() {
		return best, confidence
	}
	if best != nlu.IntentUnknown && confidence >= c.opts.SemanticThreshold {
		return best, confidence
	}

	ranked := c.fallback.Rank(text, lang, 1)
	if len(ranked) == 0 {
		return best, confidence
	}
	weighted := ranked[0].Score * c.opts.SemanticWeight

	if best == nlu.IntentUnknown {
		return ranked[0].Intent, math.Min(weighted, maxConfidence)
	}

	// Both signals present: semantic wins only with a clear margin.
	ruleScore := normalized[best]
	if weighted > ruleScore*1.2 {
		return ranked[0].Intent, math.Min(weighted, maxConfidence)
	}
	return best, math.Min(math.Max(ruleScore, weighted), maxConfidence)
}

func (c *Classifier) patternScores(lower string, lang nlu.Language) map[nlu.Intent]float64 {
	scores := make(map[nlu.Intent]float64)

	for _, in := range nlu.Intents {
		var score float64
		for _, re := range c.langPatterns(in, lang) {
			if matches := re.FindAllString(lower, -1); len(matches) > 0 {
				score += float64(len(matches))*matchWeight + presenceBonus
			}
		}
		if score > 0 {
			scores[in] = score
		}
	}
	return scores
}

func (c *Classifier) langPatterns(in nlu.Intent, lang nlu.Language) []*regexp.Regexp {
	if patterns := c.patterns[in][lang]; len(patterns) > 0 {
		return patterns
	}
	return c.patterns[in][nlu.LangEnglish]
}

// applyAdjustments reweights raw pattern scores with negation handling,
// domain heuristics, and conversation-stage hints.
func (c *Classifier) applyAdjustments(scores map[nlu.Intent]float64, lower string, lang nlu.Language, context map[string]interface{}) {
	if hasNegation(lower, lang) {
		scale(scores, nlu.IntentConfirmSubstitution, 0.1)
		scale(scores, nlu.IntentRejectSubstitution, 1.5)
	}

	if containsAny(lower, callbackPhrases) {
		scale(scores, nlu.IntentRequestCallback, 1.5)
		scale(scores, nlu.IntentReportIssue, 0.3)
	}

	// Quantity discrepancies ("should be 3 but got 2") need two numerals to
	// count as an issue report.
	if containsAny(lower, discrepancyPhrases) && len(digitsRe.FindAllString(lower, -1)) >= 2 {
		scale(scores, nlu.IntentReportIssue, 1.5)
	}

	if containsAny(lower, issuePhrases) {
		scale(scores, nlu.IntentReportIssue, 2.0)
	}

	// Explicit order references make a bare rejection reading unlikely.
	if containsAny(lower, orderReferencePhrases) {
		scale(scores, nlu.IntentRejectSubstitution, 0.3)
	}

	if containsAny(lower, timeWords) && containsAny(lower, needWords) {
		scale(scores, nlu.IntentChangeDelivery, 1.4)
		scale(scores, nlu.IntentQueryOrderStatus, 1.4)
	}

	c.applyStageAdjustments(scores, lower, context)
}

func (c *Classifier) applyStageAdjustments(scores map[nlu.Intent]float64, lower string, context map[string]interface{}) {
	stage, _ := context[nlu.CtxConversationStage].(string)

	switch stage {
	case nlu.StagePreOrderSubstitution:
		scale(scores, nlu.IntentConfirmSubstitution, 1.8)
		scale(scores, nlu.IntentRejectSubstitution, 1.8)
		scale(scores, nlu.IntentQuerySubstitution, 1.5)

		// Bare yes/no answers are meaningful while a substitute is proposed.
		bare := strings.TrimSpace(lower)
		if contains(bareYes, bare) && scores[nlu.IntentConfirmSubstitution] == 0 {
			scores[nlu.IntentConfirmSubstitution] = seedScore
		}
		if contains(bareNo, bare) && scores[nlu.IntentRejectSubstitution] == 0 {
			scores[nlu.IntentRejectSubstitution] = seedScore
		}

	case nlu.StagePostDeliveryInvestigation:
		scale(scores, nlu.IntentReportIssue, 1.8)
		scale(scores, nlu.IntentConfirmDelivery, 1.5)
		scale(scores, nlu.IntentQueryOrderStatus, 1.5)

		if _, ok := context[nlu.CtxProposedSolution]; ok {
			scale(scores, nlu.IntentConfirmSubstitution, 1.5)
			scale(scores, nlu.IntentRejectSubstitution, 1.5)
		}

		if containsAny(lower, postIssueIndicators) {
			if scores[nlu.IntentReportIssue] > 0 {
				scores[nlu.IntentReportIssue] *= 1.5
			} else {
				scores[nlu.IntentReportIssue] = seedScore
			}
		}

	default:
		// Stage-less context from older callers still hints at the
		// substitution flow.
		if len(context) > 0 {
			blob := strings.ToLower(fmt.Sprintf("%v", context))
			if strings.Contains(blob, "substitution") || strings.Contains(blob, "replacement") {
				scale(scores, nlu.IntentConfirmSubstitution, 1.5)
				scale(scores, nlu.IntentRejectSubstitution, 1.5)
			}
		}
	}
}

// resolve picks the winning intent and computes calibrated confidence. It
// also returns the normalized score map for the hybrid merge.
func resolve(scores map[nlu.Intent]float64, lower string) (nlu.Intent, float64, map[nlu.Intent]float64) {
	if len(scores) == 0 {
		return nlu.IntentUnknown, noMatchScore, nil
	}

	var maxScore, total float64
	for _, s := range scores {
		total += s
		if s > maxScore {
			maxScore = s
		}
	}

	normalized := make(map[nlu.Intent]float64, len(scores))
	for in, s := range scores {
		normalized[in] = s / math.Max(maxScore, 1.0)
	}

	// Ties resolve to the first intent in declaration order.
	best := nlu.IntentUnknown
	bestScore := -1.0
	for _, in := range nlu.Intents {
		if s, ok := normalized[in]; ok && s > bestScore {
			best = in
			bestScore = s
		}
	}

	base := normalized[best]

	// Dominance penalizes utterances where several intents scored: a winner
	// barely ahead of the pack is less trustworthy than a clean sweep.
	dominance := base
	if total > 0 {
		dominance = base / math.Max(total/maxScore, 1.0)
	}

	vague := 1.0
	if len(strings.Fields(lower)) <= 4 {
		vague = 0.85
	}
	if len(scores) > 1 {
		vague *= 0.9
	}

	confidence := math.Min(base*dominance*vague, maxConfidence)
	if confidence < minConfidence {
		confidence = minConfidence
	}
	return best, confidence, normalized
}

func hasNegation(lower string, lang nlu.Language) bool {
	words, ok := negationWords[lang]
	if !ok {
		words = negationWords[nlu.LangEnglish]
	}
	return containsAny(lower, words)
}

func scale(scores map[nlu.Intent]float64, in nlu.Intent, factor float64) {
	if _, ok := scores[in]; ok {
		scores[in] *= factor
	}
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
