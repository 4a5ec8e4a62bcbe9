// internal/nlu/pipeline/pipeline.go

// Package pipeline chains the NLU stages into single-call parsing: language
// detection, normalization, session context merging, intent classification,
// entity extraction, and confidence filtering.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/hydropony/junction2025-googlecloud/internal/common/config"
	"github.com/hydropony/junction2025-googlecloud/internal/common/logger"
	"github.com/hydropony/junction2025-googlecloud/internal/common/metrics"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/entity"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/intent"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/language"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/normalizer"
	"github.com/hydropony/junction2025-googlecloud/internal/session"
)

// Request is one utterance to parse, with optional caller context and
// session binding. Language, when set to a supported code, skips detection.
type Request struct {
	Text      string
	Language  nlu.Language
	Context   map[string]interface{}
	SessionID string
}

// Parameters carries the extraction payload of a parse result.
type Parameters struct {
	Entities entity.Entities        `json:"entities"`
	Language nlu.Language           `json:"language"`
	Context  map[string]interface{} `json:"context"`
}

// Metadata describes the conversation-stage handling applied to a result.
type Metadata struct {
	ConversationStage   string   `json:"conversation_stage"`
	ContextUsed         bool     `json:"context_used"`
	PriorityEntities    []string `json:"priority_entities"`
	MissingOrderWarning *bool    `json:"missing_order_warning,omitempty"`
}

// Result is the full outcome of parsing one utterance.
type Result struct {
	Intent           nlu.Intent `json:"intent"`
	Confidence       float64    `json:"confidence"`
	Parameters       Parameters `json:"parameters"`
	Metadata         *Metadata  `json:"metadata,omitempty"`
	Timestamp        string     `json:"timestamp"`
	SessionID        string     `json:"session_id,omitempty"`
	Uncertain        bool       `json:"uncertain"`
	ProcessingTimeMS int64      `json:"processing_time_ms"`
}

// BatchItem wraps a result in a batch response. Failed items carry an error
// message and the truncated input instead of a full result.
type BatchItem struct {
	*Result
	Error string `json:"error,omitempty"`
	Text  string `json:"text,omitempty"`
}

// BatchResult is the outcome of a multi-text parse.
type BatchResult struct {
	Results          []BatchItem `json:"results"`
	Count            int         `json:"count"`
	ProcessingTimeMS int64       `json:"processing_time_ms"`
}

// Deps are the wired components the pipeline runs on.
type Deps struct {
	Detector   *language.Detector
	Normalizer *normalizer.Normalizer
	Classifier *intent.Classifier
	Extractor  *entity.Extractor
	Fallback   intent.Fallback
	Sessions   *session.Store
	Confidence config.ConfidenceConfig
	Logger     logger.Logger
}

type Pipeline struct {
	detector   *language.Detector
	normalizer *normalizer.Normalizer
	classifier *intent.Classifier
	extractor  *entity.Extractor
	fallback   intent.Fallback
	sessions   *session.Store
	confidence config.ConfidenceConfig
	log        logger.Logger
}

func New(deps Deps) *Pipeline {
	return &Pipeline{
		detector:   deps.Detector,
		normalizer: deps.Normalizer,
		classifier: deps.Classifier,
		extractor:  deps.Extractor,
		fallback:   deps.Fallback,
		sessions:   deps.Sessions,
		confidence: deps.Confidence,
		log:        deps.Logger,
	}
}

// SemanticAvailable reports whether the semantic fallback classifier is
// fitted and usable.
func (p *Pipeline) SemanticAvailable() bool {
	return p.fallback != nil && p.fallback.Available()
}

// Parse runs the full pipeline on one utterance.
func (p *Pipeline) Parse(ctx context.Context, req Request) (*Result, error) {
	return p.parse(ctx, req, nil)
}

// ParsePreOrder parses a customer response in a pre-order substitution
// conversation. The conversation stage is forced into the context, and a
// context-supplied order number is surfaced as an entity when the utterance
// itself contains none.
func (p *Pipeline) ParsePreOrder(ctx context.Context, req Request) (*Result, error) {
	req.Context = withStage(req.Context, nlu.StagePreOrderSubstitution)

	result, err := p.parse(ctx, req, nil)
	if err != nil {
		return nil, err
	}

	merged := result.Parameters.Context
	result.Metadata = &Metadata{
		ConversationStage: nlu.StagePreOrderSubstitution,
		ContextUsed:       merged[nlu.CtxProposedSubstitute] != nil || merged[nlu.CtxOriginalProduct] != nil,
		PriorityEntities:  []string{entity.TypeProducts, entity.TypeQuantities},
	}

	injectOrderNumber(result, 0.9)
	return result, nil
}

// ParsePostDelivery parses a customer response in a post-delivery issue
// investigation. Order numbers, dates, reasons, and products get a
// confidence boost, and issue reports without a known order number are
// flagged.
func (p *Pipeline) ParsePostDelivery(ctx context.Context, req Request) (*Result, error) {
	req.Context = withStage(req.Context, nlu.StagePostDeliveryInvestigation)
	priority := []string{entity.TypeOrderNumbers, entity.TypeDates, entity.TypeReasons, entity.TypeProducts}

	result, err := p.parse(ctx, req, priority)
	if err != nil {
		return nil, err
	}

	injectOrderNumber(result, 0.95)

	merged := result.Parameters.Context
	missing := result.Intent == nlu.IntentReportIssue && len(result.Parameters.Entities.OrderNumbers) == 0
	result.Metadata = &Metadata{
		ConversationStage:   nlu.StagePostDeliveryInvestigation,
		ContextUsed:         merged[nlu.CtxOrderNumber] != nil || merged[nlu.CtxDetectedDiscrepancy] != nil,
		PriorityEntities:    priority,
		MissingOrderWarning: &missing,
	}
	return result, nil
}

// ParseBatch parses every text with the shared context and session. A
// failure on one item does not fail the batch; the item is reported with
// its error instead.
func (p *Pipeline) ParseBatch(ctx context.Context, texts []string, reqContext map[string]interface{}, sessionID string) *BatchResult {
	start := time.Now()

	items := make([]BatchItem, 0, len(texts))
	for _, text := range texts {
		result, err := p.Parse(ctx, Request{Text: text, Context: reqContext, SessionID: sessionID})
		if err != nil {
			p.log.Warn("Batch item failed", map[string]interface{}{
				"error": err.Error(),
			})
			items = append(items, BatchItem{
				Result: &Result{
					Intent:     nlu.IntentUnknown,
					Confidence: 0.0,
					Parameters: Parameters{Context: map[string]interface{}{}},
					Timestamp:  utcTimestamp(),
				},
				Error: err.Error(),
				Text:  truncate(text, 100),
			})
			continue
		}
		items = append(items, BatchItem{Result: result})
	}

	return &BatchResult{
		Results:          items,
		Count:            len(items),
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}
}

func (p *Pipeline) parse(ctx context.Context, req Request, priority []string) (*Result, error) {
	start := time.Now()

	// Detect on the raw text, then normalize with the detected language.
	// Callers that already know the language can pin it.
	lang := req.Language
	if !lang.Supported() {
		lang = p.detector.Detect(req.Text)
	}
	text := p.normalizer.Normalize(req.Text, lang)

	merged, err := p.mergeContext(ctx, req)
	if err != nil {
		return nil, err
	}

	detected, confidence := p.classifier.Classify(text, lang, merged)
	entities := p.extractor.Extract(text, lang, merged, priority, detected)

	p.filterEntities(&entities)
	uncertain := confidence < p.confidence.UncertainThreshold
	if confidence < p.confidence.MinIntentConfidence {
		p.log.Warn("Intent confidence below threshold", map[string]interface{}{
			"intent":     string(detected),
			"confidence": confidence,
		})
		detected = nlu.IntentUnknown
		merged["confidence_below_threshold"] = true
	}

	metrics.IntentsDetected.WithLabelValues(string(detected), string(lang)).Inc()

	result := &Result{
		Intent:     detected,
		Confidence: confidence,
		Parameters: Parameters{
			Entities: entities,
			Language: lang,
			Context:  merged,
		},
		Timestamp:        utcTimestamp(),
		SessionID:        req.SessionID,
		Uncertain:        uncertain,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}

	if req.SessionID != "" && p.sessions != nil {
		if err := p.sessions.AddToHistory(ctx, req.SessionID, detected, confidence, text, entities); err != nil {
			p.log.Warn("Failed to record session history", map[string]interface{}{
				"session_id": req.SessionID,
				"error":      err.Error(),
			})
		}
	}

	p.log.Info("Parsed intent", map[string]interface{}{
		"intent":             string(detected),
		"confidence":         confidence,
		"language":           string(lang),
		"processing_time_ms": result.ProcessingTimeMS,
		"session_id":         req.SessionID,
	})
	return result, nil
}

// mergeContext combines stored session context with the request context.
// Request values win on key collisions.
func (p *Pipeline) mergeContext(ctx context.Context, req Request) (map[string]interface{}, error) {
	merged := map[string]interface{}{}

	if req.SessionID != "" && p.sessions != nil {
		sessionContext, err := p.sessions.Context(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		for k, v := range sessionContext {
			merged[k] = v
		}
	}
	for k, v := range req.Context {
		merged[k] = v
	}
	return merged, nil
}

// filterEntities drops low-confidence product and quantity matches.
func (p *Pipeline) filterEntities(entities *entity.Entities) {
	minConf := p.confidence.MinEntityConfidence

	products := entities.Products[:0]
	for _, prod := range entities.Products {
		if prod.Confidence >= minConf {
			products = append(products, prod)
		}
	}
	entities.Products = products

	quantities := entities.Quantities[:0]
	for _, q := range entities.Quantities {
		if q.Confidence >= minConf {
			quantities = append(quantities, q)
		}
	}
	entities.Quantities = quantities
}

// injectOrderNumber surfaces a context-supplied order number as an entity
// when extraction found none.
func injectOrderNumber(result *Result, confidence float64) {
	if len(result.Parameters.Entities.OrderNumbers) > 0 {
		return
	}
	value, ok := result.Parameters.Context[nlu.CtxOrderNumber]
	if !ok || value == nil {
		return
	}
	result.Parameters.Entities.OrderNumbers = []entity.OrderNumber{{
		Value:      fmt.Sprintf("%v", value),
		Confidence: confidence,
		Source:     "context",
	}}
}

func withStage(reqContext map[string]interface{}, stage string) map[string]interface{} {
	out := make(map[string]interface{}, len(reqContext)+1)
	for k, v := range reqContext {
		out[k] = v
	}
	out[nlu.CtxConversationStage] = stage
	return out
}

func utcTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
