// internal/nlu/entity/extractor.go

// Package entity extracts structured entities from normalized transcripts:
// catalog products, quantities, order numbers, dates, issue reasons,
// sentiment, and urgency. All pattern tables are compiled at construction.
package entity

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hydropony/junction2025-googlecloud/internal/catalog"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
)

// Options tunes fuzzy product matching.
type Options struct {
	FuzzyThreshold  float64
	MaxFuzzyResults int
}

func DefaultOptions() Options {
	return Options{FuzzyThreshold: 0.7, MaxFuzzyResults: 5}
}

const maxResults = 5

var (
	quantityExprs = []string{
		`\b(\d+)\s*(?:x|×|pcs?|pieces?|units?|kpl|kappaletta|st|stycken)\b`,
		`\b(\d+)\s*(?:pack|packs?|paketti|paket|förpackning)\b`,
		`\b(\d+)\s*(?:liter|l|liters?|litra)\b`,
		`\b(\d+)\s*(?:kg|kilogram|kilograms?|kilo|kilogramma)\b`,
		`\b(\d+)\s*(?:g|gram|grams?|gramma)\b`,
		`(?:^|[^\p{L}\p{N}])(one|two|three|four|five|six|seven|eight|nine|ten|yksi|kaksi|kolme|neljä|viisi|en|två|tre|fyra|fem)(?:[^\p{L}\p{N}]|$)`,
	}

	quantityWords = map[string]int{
		"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
		"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
		"yksi": 1, "kaksi": 2, "kolme": 3, "neljä": 4, "viisi": 5,
		"kuusi": 6, "seitsemän": 7, "kahdeksan": 8, "yhdeksän": 9, "kymmenen": 10,
		"en": 1, "två": 2, "tre": 3, "fyra": 4, "fem": 5,
		"sex": 6, "sju": 7, "åtta": 8, "nio": 9, "tio": 10,
	}

	standaloneNumberRe = regexp.MustCompile(`\b(\d+)\b`)
	capitalizedRe      = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\b`)
	quotedRe           = regexp.MustCompile(`"([^"]+)"`)
	spaceRe            = regexp.MustCompile(`\s+`)

	orderNumberExprs = map[nlu.Language][]string{
		nlu.LangEnglish: {
			`order\s(?:number)?\s(?:hash|#|number\s?sign)?\s*([a-z0-9]{2,}[a-z0-9\s-]*)`,
			`order\s#?\s*([a-z0-9]{3,})`,
			`order\s+(?:number\s+)?((?:(?:one|two|three|four|five|six|seven|eight|nine|zero|\d+)\s*){3,})`,
		},
		nlu.LangFinnish: {
			`tilaus\s(?:numero)?\s(?:risuaita|#)?\s*([a-z0-9\s-]+)`,
			`tilaus\s#?\s*([a-z0-9-]+)`,
		},
		nlu.LangSwedish: {
			`beställning\s(?:nummer)?\s(?:hash|#)?\s*([a-z0-9\s-]+)`,
			`beställning\s#?\s*([a-z0-9-]+)`,
		},
	}

	orderNumberStopwords = map[string]struct{}{
		"there": {}, "is": {}, "are": {}, "no": {}, "not": {}, "in": {},
		"my": {}, "the": {}, "order": {}, "delivery": {}, "this": {},
		"that": {}, "these": {}, "those": {}, "was": {}, "were": {},
		"has": {}, "have": {}, "had": {}, "from": {}, "with": {}, "to": {},
		"for": {}, "of": {}, "on": {}, "at": {}, "by": {}, "a": {}, "an": {},
	}

	specificDateExprs = []string{
		`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`,
		`\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`,
	}

	spokenDateExprs = map[nlu.Language][]string{
		nlu.LangEnglish: {
			`\b(?:the|on)\s+(\d{1,2})(?:st|nd|rd|th)?\b`,
			`\b(?:on|this|next|last)\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`,
		},
		nlu.LangFinnish: {
			`\b(\d{1,2})\.?\s*(?:päivä|päivänä)(?:[^\p{L}\p{N}]|$)`,
		},
		nlu.LangSwedish: {
			`\b(?:på|den)\s+(\d{1,2})(?:e|a)?\b`,
		},
	}

	urgencyExprs = map[nlu.Language][]string{
		nlu.LangEnglish: {
			nlu.Word(`urgent|asap|as soon as possible|immediately|right away|now|today|quickly|fast|rush`),
			nlu.Word(`need|needed`) + `.*` + nlu.Word(`urgent|immediately|now|today`),
		},
		nlu.LangFinnish: {
			nlu.Word(`kiireellinen|heti|nyt|tänään|pikaisesti|nopeasti|kiire`),
			nlu.Word(`tarvitsen|tarvitaan`) + `.*` + nlu.Word(`heti|nyt|tänään|kiireellisesti`),
		},
		nlu.LangSwedish: {
			nlu.Word(`brådskande|snabbt|nu|idag|omedelbart|skyndsamt|bråttom`),
			nlu.Word(`behöver|behövs`) + `.*` + nlu.Word(`nu|idag|omedelbart|brådskande`),
		},
	}
)

type relativeDate struct {
	word   string
	offset *int
}

func days(n int) *int { return &n }

var relativeDates = map[nlu.Language][]relativeDate{
	nlu.LangEnglish: {
		{"today", days(0)}, {"tomorrow", days(1)}, {"yesterday", days(-1)},
		{"next week", days(7)}, {"last week", days(-7)},
		{"next monday", nil}, {"this monday", nil},
		{"two days ago", days(-2)}, {"in two days", days(2)},
	},
	nlu.LangFinnish: {
		{"tänään", days(0)}, {"huomenna", days(1)}, {"eilen", days(-1)},
		{"ensi viikko", days(7)}, {"viime viikko", days(-7)},
	},
	nlu.LangSwedish: {
		{"idag", days(0)}, {"imorgon", days(1)}, {"igår", days(-1)},
		{"nästa vecka", days(7)}, {"förra veckan", days(-7)},
	},
}

type reasonRule struct {
	reasonType string
	keywords   []string
}

var reasonRules = map[nlu.Language][]reasonRule{
	nlu.LangEnglish: {
		{"damaged", []string{"damaged", "broken", "cracked", "smashed", "torn", "ripped", "bent", "dented"}},
		{"missing", []string{"missing", "not received", "did not get", "absent", "gone", "lost"}},
		{"wrong", []string{"wrong", "incorrect", "not what i ordered", "different", "not right", "mistake"}},
		{"expired", []string{"expired", "out of date", "past due", "old", "stale"}},
		{"defective", []string{"defective", "faulty", "not working", "broken", "malfunctioning"}},
		{"incorrect_quantity", []string{"wrong amount", "wrong quantity", "too many", "too few", "not enough", "too much"}},
	},
	nlu.LangFinnish: {
		{"damaged", []string{"vahingoittunut", "rikki", "särkynyt", "repeytynyt", "taivutettu"}},
		{"missing", []string{"puuttuu", "ei tullut", "ei saapunut", "kadonnut"}},
		{"wrong", []string{"väärä", "virheellinen", "ei oikea", "eri", "virhe"}},
		{"expired", []string{"vanhentunut", "päättynyt", "vanha"}},
		{"defective", []string{"viallinen", "rikki", "ei toimi"}},
		{"incorrect_quantity", []string{"väärä määrä", "liikaa", "liian vähän"}},
	},
	nlu.LangSwedish: {
		{"damaged", []string{"skadad", "trasig", "söndrig", "bucklad"}},
		{"missing", []string{"saknas", "fick inte", "mottog inte", "försvunnen"}},
		{"wrong", []string{"fel", "inkorrekt", "inte rätt", "annorlunda"}},
		{"expired", []string{"utgången", "gammal", "för gammal"}},
		{"defective", []string{"defekt", "trasig", "fungerar inte"}},
		{"incorrect_quantity", []string{"fel mängd", "för mycket", "för lite"}},
	},
}

type reasonPhrase struct {
	phrase     string
	reasonType string
}

var reasonPhrases = map[nlu.Language][]reasonPhrase{
	nlu.LangEnglish: {
		{"not working", "defective"},
		{"did not arrive", "missing"},
		{"never received", "missing"},
		{"wrong item", "wrong"},
		{"wrong product", "wrong"},
	},
	nlu.LangFinnish: {
		{"ei toimi", "defective"},
		{"ei tullut", "missing"},
		{"väärä tuote", "wrong"},
	},
	nlu.LangSwedish: {
		{"fungerar inte", "defective"},
		{"kom inte", "missing"},
		{"fel produkt", "wrong"},
	},
}

// Extractor runs all sub-extractors over a transcript. Immutable after
// construction and safe for concurrent use.
type Extractor struct {
	catalog   *catalog.Catalog
	scorer    PolarityScorer
	opts      Options
	sentiment sentimentRules

	quantity     []*regexp.Regexp
	orderNumbers map[nlu.Language][]*regexp.Regexp
	specificDate []*regexp.Regexp
	spokenDate   map[nlu.Language][]*regexp.Regexp
	urgency      map[nlu.Language][]*regexp.Regexp
	reasonWords  map[nlu.Language]map[string]*regexp.Regexp
}

// NewExtractor compiles all extraction tables. The scorer may be nil, in
// which case sentiment uses patterns only.
func NewExtractor(cat *catalog.Catalog, scorer PolarityScorer, opts Options) *Extractor {
	e := &Extractor{
		catalog:      cat,
		scorer:       scorer,
		opts:         opts,
		sentiment:    compileSentimentRules(),
		quantity:     compileExprs(quantityExprs),
		orderNumbers: compileLangExprs(orderNumberExprs),
		specificDate: compileExprs(specificDateExprs),
		spokenDate:   compileLangExprs(spokenDateExprs),
		urgency:      compileLangExprs(urgencyExprs),
		reasonWords:  make(map[nlu.Language]map[string]*regexp.Regexp),
	}

	for lang, rules := range reasonRules {
		compiled := make(map[string]*regexp.Regexp)
		for _, rule := range rules {
			for _, kw := range rule.keywords {
				if _, ok := compiled[kw]; !ok {
					compiled[kw] = regexp.MustCompile(`(?i)` + nlu.Word(regexp.QuoteMeta(kw)))
				}
			}
		}
		e.reasonWords[lang] = compiled
	}

	return e
}

func compileExprs(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+expr))
	}
	return out
}

func compileLangExprs(table map[nlu.Language][]string) map[nlu.Language][]*regexp.Regexp {
	out := make(map[nlu.Language][]*regexp.Regexp, len(table))
	for lang, exprs := range table {
		out[lang] = compileExprs(exprs)
	}
	return out
}

// Extract runs every sub-extractor. Priority entity types get a 1.2x
// confidence boost, capped at 1.0.
func (e *Extractor) Extract(text string, lang nlu.Language, context map[string]interface{}, priority []string, detected nlu.Intent) Entities {
	entities := Entities{
		Products:     e.extractProducts(text, context),
		Quantities:   e.extractQuantities(text),
		OrderNumbers: e.extractOrderNumbers(text, lang),
		Dates:        e.extractDates(text, lang),
		Reasons:      e.extractReasons(text, lang),
		Sentiment:    e.extractSentiment(text, lang, detected),
		Urgency:      e.extractUrgency(text, lang),
		Language:     lang,
	}

	for _, entityType := range priority {
		boostConfidence(&entities, entityType)
	}
	return entities
}

func boostConfidence(entities *Entities, entityType string) {
	boost := func(c float64) float64 { return math.Min(1.0, c*1.2) }

	switch entityType {
	case TypeProducts:
		for i := range entities.Products {
			entities.Products[i].Confidence = boost(entities.Products[i].Confidence)
		}
	case TypeQuantities:
		for i := range entities.Quantities {
			entities.Quantities[i].Confidence = boost(entities.Quantities[i].Confidence)
		}
	case TypeOrderNumbers:
		for i := range entities.OrderNumbers {
			entities.OrderNumbers[i].Confidence = boost(entities.OrderNumbers[i].Confidence)
		}
	case TypeDates:
		for i := range entities.Dates {
			entities.Dates[i].Confidence = boost(entities.Dates[i].Confidence)
		}
	case TypeReasons:
		for i := range entities.Reasons {
			entities.Reasons[i].Confidence = boost(entities.Reasons[i].Confidence)
		}
	case TypeSentiment:
		entities.Sentiment.Confidence = boost(entities.Sentiment.Confidence)
	case TypeUrgency:
		entities.Urgency.Confidence = boost(entities.Urgency.Confidence)
	}
}

// ==========================================
// Products
// ==========================================

func (e *Extractor) extractProducts(text string, context map[string]interface{}) []Product {
	lower := strings.ToLower(text)
	var products []Product

	if e.catalog == nil || e.catalog.Len() == 0 {
		return extractHeuristicProducts(text)
	}

	for _, p := range e.catalog.Products() {
		nameLower := strings.ToLower(p.Name)

		if nameLower != "" && strings.Contains(lower, nameLower) {
			products = append(products, Product{Name: p.Name, GTIN: p.GTIN, Confidence: 0.8})
			continue
		}

		matched := false
		for _, variant := range p.NameVariants {
			if strings.Contains(lower, strings.ToLower(variant)) {
				products = append(products, Product{Name: p.Name, GTIN: p.GTIN, Confidence: 0.7})
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		// Partial word-level match: 60% of the name words present.
		words := strings.Fields(nameLower)
		if len(words) > 1 {
			hits := 0
			for _, w := range words {
				if strings.Contains(lower, w) {
					hits++
				}
			}
			if float64(hits) >= float64(len(words))*0.6 {
				products = append(products, Product{Name: p.Name, GTIN: p.GTIN, Confidence: 0.5})
			}
		}
	}

	if len(products) < 3 {
		existing := make(map[string]struct{}, len(products))
		for _, p := range products {
			existing[strings.ToLower(p.Name)] = struct{}{}
		}
		for _, fp := range e.fuzzyMatchProducts(lower) {
			if _, ok := existing[strings.ToLower(fp.Name)]; !ok {
				products = append(products, fp)
			}
		}
	}

	// A proposed substitute mentioned again gets boosted and moved first.
	if proposed, ok := context[nlu.CtxProposedSubstitute].(string); ok && proposed != "" {
		proposedLower := strings.ToLower(proposed)
		for i := range products {
			nameLower := strings.ToLower(products[i].Name)
			if nameLower == proposedLower || strings.Contains(nameLower, proposedLower) {
				products[i].Confidence = math.Min(1.0, products[i].Confidence*1.3)
				boosted := products[i]
				products = append(products[:i], products[i+1:]...)
				products = append([]Product{boosted}, products...)
				break
			}
		}
	}

	return dedupeProducts(products, e.opts.MaxFuzzyResults)
}

func extractHeuristicProducts(text string) []Product {
	var products []Product
	for _, match := range capitalizedRe.FindAllString(text, 3) {
		if len(strings.Fields(match)) <= 4 {
			products = append(products, Product{Name: match, Confidence: 0.3})
		}
	}
	return products
}

func (e *Extractor) fuzzyMatchProducts(lower string) []Product {
	var results []Product

	quoted := quotedRe.FindAllStringSubmatch(lower, -1)
	if len(quoted) == 0 {
		// No explicit candidates: slide each catalog name over the text.
		for _, p := range e.catalog.Products() {
			if p.Name == "" {
				continue
			}
			if sim := windowRatio(lower, strings.ToLower(p.Name)); sim >= e.opts.FuzzyThreshold {
				results = append(results, Product{Name: p.Name, GTIN: p.GTIN, Confidence: sim})
			}
		}
		if len(results) > e.opts.MaxFuzzyResults {
			results = results[:e.opts.MaxFuzzyResults]
		}
		return results
	}

	candidates := quoted
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	for _, c := range candidates {
		bestSim := 0.0
		var best *catalog.Product
		for i, p := range e.catalog.Products() {
			if p.Name == "" {
				continue
			}
			if sim := ratio(c[1], strings.ToLower(p.Name)); sim > bestSim {
				bestSim = sim
				best = &e.catalog.Products()[i]
			}
		}
		if best != nil && bestSim >= e.opts.FuzzyThreshold {
			results = append(results, Product{Name: best.Name, GTIN: best.GTIN, Confidence: bestSim})
		}
	}
	return results
}

func dedupeProducts(products []Product, limit int) []Product {
	seen := make(map[string]struct{}, len(products))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		key := p.GTIN + "|" + p.Name
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ==========================================
// Quantities
// ==========================================

func (e *Extractor) extractQuantities(text string) []Quantity {
	lower := strings.ToLower(text)
	var quantities []Quantity

	for _, re := range e.quantity {
		for _, match := range re.FindAllStringSubmatch(lower, -1) {
			valueStr := match[1]

			value, err := strconv.Atoi(valueStr)
			if err != nil {
				mapped, ok := quantityWords[valueStr]
				if !ok {
					continue
				}
				value = mapped
			}

			unit := strings.TrimSpace(strings.Replace(match[0], valueStr, "", 1))
			unit = strings.Trim(unit, " .,!?")
			if unit == "" {
				unit = "unit"
			}
			quantities = append(quantities, Quantity{Value: value, Unit: unit, Confidence: 0.8})
		}
	}

	// Standalone numbers are weaker quantity signals.
	standalone := standaloneNumberRe.FindAllString(text, 3)
	for _, numStr := range standalone {
		num, err := strconv.Atoi(numStr)
		if err != nil || num < 1 || num > 100 {
			continue
		}
		quantities = append(quantities, Quantity{Value: num, Unit: "unit", Confidence: 0.4})
	}

	if len(quantities) > maxResults {
		quantities = quantities[:maxResults]
	}
	return quantities
}

// ==========================================
// Order Numbers
// ==========================================

func (e *Extractor) extractOrderNumbers(text string, lang nlu.Language) []OrderNumber {
	lower := strings.ToLower(text)

	patterns, ok := e.orderNumbers[lang]
	if !ok {
		patterns = e.orderNumbers[nlu.LangEnglish]
	}

	var orders []OrderNumber
	for _, re := range patterns {
		for _, match := range re.FindAllStringSubmatch(lower, -1) {
			raw := match[0]
			value := match[len(match)-1]

			value = spaceRe.ReplaceAllString(strings.ToUpper(strings.TrimSpace(value)), "")
			if value == "" {
				continue
			}
			if _, stop := orderNumberStopwords[strings.ToLower(value)]; stop {
				continue
			}
			if !isOrderNumberShaped(value) {
				continue
			}
			orders = append(orders, OrderNumber{Value: value, Confidence: 0.8, RawMatch: raw})
		}
	}

	seen := make(map[string]struct{}, len(orders))
	out := make([]OrderNumber, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.Value]; ok {
			continue
		}
		seen[o.Value] = struct{}{}
		out = append(out, o)
	}
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

func isOrderNumberShaped(value string) bool {
	if len(value) < 3 {
		return false
	}
	alnum := 0
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z':
			alnum++
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return alnum >= 2
}

// ==========================================
// Dates
// ==========================================

func (e *Extractor) extractDates(text string, lang nlu.Language) []Date {
	lower := strings.ToLower(text)
	var dates []Date

	rel, ok := relativeDates[lang]
	if !ok {
		rel = relativeDates[nlu.LangEnglish]
	}
	for _, rd := range rel {
		if strings.Contains(lower, rd.word) {
			dates = append(dates, Date{
				Value:      rd.word,
				Type:       "relative",
				OffsetDays: rd.offset,
				Confidence: 0.8,
			})
		}
	}

	for _, re := range e.specificDate {
		for _, match := range re.FindAllString(text, -1) {
			dates = append(dates, Date{
				Value:      match,
				Type:       "specific",
				Confidence: 0.7,
				RawMatch:   match,
			})
		}
	}

	spoken, ok := e.spokenDate[lang]
	if !ok {
		spoken = e.spokenDate[nlu.LangEnglish]
	}
	for _, re := range spoken {
		for _, match := range re.FindAllString(lower, -1) {
			dates = append(dates, Date{
				Value:      match,
				Type:       "spoken",
				Confidence: 0.6,
				RawMatch:   match,
			})
		}
	}

	seen := make(map[string]struct{}, len(dates))
	out := make([]Date, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d.Value]; ok || d.Value == "" {
			continue
		}
		seen[d.Value] = struct{}{}
		out = append(out, d)
	}
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

// ==========================================
// Reasons
// ==========================================

func (e *Extractor) extractReasons(text string, lang nlu.Language) []Reason {
	lower := strings.ToLower(text)

	rules, ok := reasonRules[lang]
	if !ok {
		lang = nlu.LangEnglish
		rules = reasonRules[lang]
	}

	var reasons []Reason
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if e.reasonWords[lang][kw].MatchString(lower) {
				reasons = append(reasons, Reason{Type: rule.reasonType, Value: kw, Confidence: 0.7})
				break
			}
		}
	}

	phrases, ok := reasonPhrases[lang]
	if !ok {
		phrases = reasonPhrases[nlu.LangEnglish]
	}
	for _, rp := range phrases {
		if !strings.Contains(lower, rp.phrase) {
			continue
		}
		already := false
		for _, r := range reasons {
			if r.Type == rp.reasonType {
				already = true
				break
			}
		}
		if !already {
			reasons = append(reasons, Reason{Type: rp.reasonType, Value: rp.phrase, Confidence: 0.8})
		}
	}

	if len(reasons) > maxResults {
		reasons = reasons[:maxResults]
	}
	return reasons
}

// ==========================================
// Urgency
// ==========================================

func (e *Extractor) extractUrgency(text string, lang nlu.Language) Urgency {
	lower := strings.ToLower(text)

	patterns, ok := e.urgency[lang]
	if !ok {
		patterns = e.urgency[nlu.LangEnglish]
	}

	score := 0.0
	for _, re := range patterns {
		score += float64(len(re.FindAllString(lower, -1))) * 0.4
	}

	switch {
	case score > 0.3:
		return Urgency{Level: UrgencyHigh, Confidence: math.Min(score, 1.0)}
	case score > 0.1:
		return Urgency{Level: UrgencyMedium, Confidence: math.Min(score, 0.7)}
	default:
		return Urgency{Level: UrgencyLow, Confidence: 0.3}
	}
}
