// internal/nlu/normalizer/normalizer.go

// Package normalizer cleans up voice-to-text transcripts before
// classification. Steps run in a fixed order exactly once per call, and the
// full pass is idempotent: normalizing already-normalized text is a no-op.
package normalizer

import (
	"regexp"
	"strings"

	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filler words and hesitations removed per language.
var fillerWords = map[nlu.Language][]string{
	nlu.LangEnglish: {
		"um", "uh", "er", "ah", "like", "you know", "actually", "basically",
		"literally", "so", "well", "hmm",
	},
	nlu.LangFinnish: {"öö", "ää", "tuota", "niin", "siis", "no", "no niin"},
	nlu.LangSwedish: {"öhm", "eh", "alltså", "liksom", "typ", "va"},
}

// English contractions expanded to their spelled-out forms.
var contractions = []struct {
	pattern     string
	replacement string
}{
	{`don't`, "do not"},
	{`doesn't`, "does not"},
	{`didn't`, "did not"},
	{`won't`, "will not"},
	{`can't`, "cannot"},
	{`couldn't`, "could not"},
	{`shouldn't`, "should not"},
	{`wouldn't`, "would not"},
	{`isn't`, "is not"},
	{`aren't`, "are not"},
	{`wasn't`, "was not"},
	{`weren't`, "were not"},
	{`haven't`, "have not"},
	{`hasn't`, "has not"},
	{`hadn't`, "had not"},
	{`i'm`, "i am"},
	{`you're`, "you are"},
	{`we're`, "we are"},
	{`they're`, "they are"},
	{`it's`, "it is"},
	{`that's`, "that is"},
	{`what's`, "what is"},
	{`i'll`, "i will"},
	{`you'll`, "you will"},
	{`we'll`, "we will"},
	{`i'd`, "i would"},
	{`you'd`, "you would"},
	{`i've`, "i have"},
	{`you've`, "you have"},
}

// Common voice transcription errors, English only. "to"/"for" are
// context-dependent homophones but the grocery domain overwhelmingly means
// the number.
var transcriptionFixes = []struct {
	word        string
	replacement string
}{
	{"to", "two"},
	{"for", "four"},
	{"hash", "#"},
	{"number sign", "#"},
	{"pound sign", "#"},
}

// Spoken number words per language, usable via NormalizeSpokenNumbers.
// Compound forms ("a couple", "ett par") come first so the single-word
// entries cannot clobber them.
var numberWords = map[nlu.Language][]struct {
	word  string
	digit string
}{
	nlu.LangEnglish: {
		{"a couple", "2"}, {"a few", "3"}, {"several", "5"},
		{"zero", "0"}, {"one", "1"}, {"two", "2"}, {"three", "3"},
		{"four", "4"}, {"five", "5"}, {"six", "6"}, {"seven", "7"},
		{"eight", "8"}, {"nine", "9"}, {"ten", "10"},
		{"eleven", "11"}, {"twelve", "12"}, {"thirteen", "13"},
		{"fourteen", "14"}, {"fifteen", "15"}, {"sixteen", "16"},
		{"seventeen", "17"}, {"eighteen", "18"}, {"nineteen", "19"},
		{"twenty", "20"}, {"thirty", "30"}, {"forty", "40"},
		{"fifty", "50"}, {"sixty", "60"}, {"seventy", "70"},
		{"eighty", "80"}, {"ninety", "90"}, {"hundred", "100"},
	},
	nlu.LangFinnish: {
		{"nolla", "0"}, {"yksi", "1"}, {"kaksi", "2"}, {"kolme", "3"},
		{"neljä", "4"}, {"viisi", "5"}, {"kuusi", "6"}, {"seitsemän", "7"},
		{"kahdeksan", "8"}, {"yhdeksän", "9"}, {"kymmenen", "10"},
		{"pari", "2"}, {"muutama", "3"},
	},
	nlu.LangSwedish: {
		{"ett par", "2"}, {"noll", "0"}, {"en", "1"}, {"ett", "1"},
		{"två", "2"}, {"tre", "3"}, {"fyra", "4"}, {"fem", "5"},
		{"sex", "6"}, {"sju", "7"}, {"åtta", "8"}, {"nio", "9"},
		{"tio", "10"}, {"några", "3"},
	},
}

// wordSub is a whole-word substitution. The boundary groups are captured and
// restored on replacement because RE2 has no lookaround and its \b does not
// treat accented letters as word characters.
type wordSub struct {
	re          *regexp.Regexp
	replacement string
}

func newWordSub(word, replacement string) wordSub {
	pattern := `(?i)(^|[^\p{L}\p{N}])(?:` + regexp.QuoteMeta(word) + `)([^\p{L}\p{N}]|$)`
	return wordSub{
		re:          regexp.MustCompile(pattern),
		replacement: "${1}" + replacement + "${2}",
	}
}

// apply substitutes until stable. A single pass can miss back-to-back
// occurrences because the boundary character is consumed by the match.
func (s wordSub) apply(text string) string {
	for {
		replaced := s.re.ReplaceAllString(text, s.replacement)
		if replaced == text {
			return replaced
		}
		text = replaced
	}
}

// Normalizer applies the transcript cleanup steps. All pattern tables are
// compiled once at construction and never mutated, so a single instance is
// safe for concurrent use.
type Normalizer struct {
	fillers      map[nlu.Language][]wordSub
	contractions []wordSub
	fixes        []wordSub
	numbers      map[nlu.Language][]wordSub
}

func NewNormalizer() *Normalizer {
	n := &Normalizer{
		fillers: make(map[nlu.Language][]wordSub, len(fillerWords)),
		numbers: make(map[nlu.Language][]wordSub, len(numberWords)),
	}

	for lang, words := range fillerWords {
		subs := make([]wordSub, 0, len(words))
		for _, w := range words {
			subs = append(subs, newWordSub(w, ""))
		}
		n.fillers[lang] = subs
	}

	for _, c := range contractions {
		n.contractions = append(n.contractions, wordSub{
			re:          regexp.MustCompile(`(?i)` + regexp.QuoteMeta(c.pattern)),
			replacement: c.replacement,
		})
	}

	for _, f := range transcriptionFixes {
		n.fixes = append(n.fixes, newWordSub(f.word, f.replacement))
	}

	for lang, words := range numberWords {
		subs := make([]wordSub, 0, len(words))
		for _, w := range words {
			subs = append(subs, newWordSub(w.word, w.digit))
		}
		n.numbers[lang] = subs
	}

	return n
}

// Normalize cleans a transcript for the given language. Steps, in order:
// collapse whitespace, remove fillers, expand English contractions, fix
// transcription errors, re-collapse whitespace.
func (n *Normalizer) Normalize(text string, lang nlu.Language) string {
	if text == "" {
		return text
	}

	text = whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	text = n.removeFillers(text, lang)
	text = n.expandContractions(text, lang)
	text = n.fixTranscriptionErrors(text, lang)
	text = whitespaceRun.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

func (n *Normalizer) removeFillers(text string, lang nlu.Language) string {
	fillers, ok := n.fillers[lang]
	if !ok {
		fillers = n.fillers[nlu.LangEnglish]
	}

	for _, sub := range fillers {
		text = sub.apply(text)
	}
	return text
}

func (n *Normalizer) expandContractions(text string, lang nlu.Language) string {
	if lang != nlu.LangEnglish {
		return text
	}

	for _, c := range n.contractions {
		text = c.re.ReplaceAllString(text, c.replacement)
	}
	return text
}

func (n *Normalizer) fixTranscriptionErrors(text string, lang nlu.Language) string {
	if lang != nlu.LangEnglish {
		return text
	}

	for _, f := range n.fixes {
		text = f.apply(text)
	}
	return text
}

// NormalizeSpokenNumbers converts spoken number words to digits ("two
// bottles" -> "2 bottles"). Separate from Normalize so order-number heavy
// flows can opt in without affecting intent patterns.
func (n *Normalizer) NormalizeSpokenNumbers(text string, lang nlu.Language) string {
	numbers, ok := n.numbers[lang]
	if !ok {
		numbers = n.numbers[nlu.LangEnglish]
	}

	for _, sub := range numbers {
		text = sub.apply(text)
	}

	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
