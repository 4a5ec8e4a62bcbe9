// internal/nlu/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydropony/junction2025-googlecloud/internal/catalog"
	"github.com/hydropony/junction2025-googlecloud/internal/common/config"
	"github.com/hydropony/junction2025-googlecloud/internal/common/database"
	"github.com/hydropony/junction2025-googlecloud/internal/common/logger"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/entity"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/intent"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/language"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/normalizer"
	"github.com/hydropony/junction2025-googlecloud/internal/session"
)

func testConfidence() config.ConfidenceConfig {
	return config.ConfidenceConfig{
		MinIntentConfidence: 0.3,
		MinEntityConfidence: 0.4,
		UncertainThreshold:  0.6,
	}
}

func newTestPipeline(t *testing.T, sessions *session.Store) *Pipeline {
	t.Helper()
	log := logger.NewTestLogger(t)
	return New(Deps{
		Detector:   language.NewDetector(),
		Normalizer: normalizer.NewNormalizer(),
		Classifier: intent.NewClassifier(intent.DefaultOptions(), intent.NoFallback()),
		Extractor:  entity.NewExtractor(catalog.New(nil, log), nil, entity.DefaultOptions()),
		Fallback:   intent.NoFallback(),
		Sessions:   sessions,
		Confidence: testConfidence(),
		Logger:     log,
	})
}

func newSessionStore(t *testing.T) *session.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewStore(database.NewRedisFromClient(client), config.SessionConfig{
		Enabled:    true,
		MaxHistory: 10,
		TTLSeconds: 3600,
	}, logger.NewTestLogger(t))
}

// ==========================================
// Parse
// ==========================================

func TestParse_EndToEnd(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.Parse(context.Background(), Request{Text: "yes, i will accept the replacement milk"})
	require.NoError(t, err)

	assert.Equal(t, nlu.IntentConfirmSubstitution, result.Intent)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
	assert.False(t, result.Uncertain)
	assert.Equal(t, nlu.LangEnglish, result.Parameters.Language)
	assert.NotEmpty(t, result.Timestamp)
	assert.Nil(t, result.Metadata)
}

func TestParse_UnknownStaysAboveFloor(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.Parse(context.Background(), Request{Text: "the weather is quite something"})
	require.NoError(t, err)

	assert.Equal(t, nlu.IntentUnknown, result.Intent)
	assert.True(t, result.Uncertain)
	_, flagged := result.Parameters.Context["confidence_below_threshold"]
	assert.False(t, flagged)
}

func TestParse_EmptyTextFlagsBelowThreshold(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.Parse(context.Background(), Request{Text: ""})
	require.NoError(t, err)

	assert.Equal(t, nlu.IntentUnknown, result.Intent)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, true, result.Parameters.Context["confidence_below_threshold"])
}

func TestParse_PinnedLanguageSkipsDetection(t *testing.T) {
	p := newTestPipeline(t, nil)

	// "kiitos" would detect as Finnish; pinning Swedish overrides that.
	result, err := p.Parse(context.Background(), Request{Text: "kiitos", Language: nlu.LangSwedish})
	require.NoError(t, err)
	assert.Equal(t, nlu.LangSwedish, result.Parameters.Language)
}

func TestParse_ContextPassedThrough(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.Parse(context.Background(), Request{
		Text:    "hello there",
		Context: map[string]interface{}{"customer_id": "c-42"},
	})
	require.NoError(t, err)

	assert.Equal(t, nlu.IntentGreeting, result.Intent)
	assert.Equal(t, "c-42", result.Parameters.Context["customer_id"])
}

// ==========================================
// Session Integration
// ==========================================

func TestParse_RecordsSessionHistory(t *testing.T) {
	store := newSessionStore(t)
	p := newTestPipeline(t, store)
	ctx := context.Background()

	_, err := p.Parse(ctx, Request{Text: "hello", SessionID: "s1"})
	require.NoError(t, err)

	sess, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Len(t, sess.History, 1)
	assert.Equal(t, nlu.IntentGreeting, sess.History[0].Intent)
}

func TestParse_SessionContextCarriesForward(t *testing.T) {
	store := newSessionStore(t)
	p := newTestPipeline(t, store)
	ctx := context.Background()

	_, err := p.Parse(ctx, Request{Text: "hello", SessionID: "s2"})
	require.NoError(t, err)

	result, err := p.Parse(ctx, Request{Text: "where is my order", SessionID: "s2"})
	require.NoError(t, err)

	assert.Equal(t, "greeting", result.Parameters.Context[nlu.CtxLastIntent])
	assert.Equal(t, 1, result.Parameters.Context[nlu.CtxInteractionCount])
}

func TestParse_RequestContextWinsOverSession(t *testing.T) {
	store := newSessionStore(t)
	p := newTestPipeline(t, store)
	ctx := context.Background()

	_, err := p.Parse(ctx, Request{Text: "hello", SessionID: "s3"})
	require.NoError(t, err)

	result, err := p.Parse(ctx, Request{
		Text:      "where is my order",
		Context:   map[string]interface{}{nlu.CtxLastIntent: "report_issue"},
		SessionID: "s3",
	})
	require.NoError(t, err)

	assert.Equal(t, "report_issue", result.Parameters.Context[nlu.CtxLastIntent])
}

// ==========================================
// Stage Variants
// ==========================================

func TestParsePreOrder(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.ParsePreOrder(context.Background(), Request{
		Text: "yes that works",
		Context: map[string]interface{}{
			nlu.CtxOrderNumber:        "A123",
			nlu.CtxProposedSubstitute: "oat milk",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, nlu.IntentConfirmSubstitution, result.Intent)
	require.NotNil(t, result.Metadata)
	assert.Equal(t, nlu.StagePreOrderSubstitution, result.Metadata.ConversationStage)
	assert.True(t, result.Metadata.ContextUsed)
	assert.Equal(t, []string{entity.TypeProducts, entity.TypeQuantities}, result.Metadata.PriorityEntities)
	assert.Nil(t, result.Metadata.MissingOrderWarning)

	require.Len(t, result.Parameters.Entities.OrderNumbers, 1)
	assert.Equal(t, "A123", result.Parameters.Entities.OrderNumbers[0].Value)
	assert.InDelta(t, 0.9, result.Parameters.Entities.OrderNumbers[0].Confidence, 1e-9)
	assert.Equal(t, "context", result.Parameters.Entities.OrderNumbers[0].Source)
}

func TestParsePreOrder_NoContextHints(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.ParsePreOrder(context.Background(), Request{Text: "no, keep my original order"})
	require.NoError(t, err)

	assert.Equal(t, nlu.IntentRejectSubstitution, result.Intent)
	require.NotNil(t, result.Metadata)
	assert.False(t, result.Metadata.ContextUsed)
	assert.Empty(t, result.Parameters.Entities.OrderNumbers)
}

func TestParsePostDelivery(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.ParsePostDelivery(context.Background(), Request{
		Text: "two items are missing from my delivery",
		Context: map[string]interface{}{
			nlu.CtxOrderNumber:         "555123",
			nlu.CtxDetectedDiscrepancy: true,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, nlu.IntentReportIssue, result.Intent)
	require.NotNil(t, result.Metadata)
	assert.Equal(t, nlu.StagePostDeliveryInvestigation, result.Metadata.ConversationStage)
	assert.True(t, result.Metadata.ContextUsed)
	assert.Equal(t,
		[]string{entity.TypeOrderNumbers, entity.TypeDates, entity.TypeReasons, entity.TypeProducts},
		result.Metadata.PriorityEntities)

	require.NotNil(t, result.Metadata.MissingOrderWarning)
	assert.False(t, *result.Metadata.MissingOrderWarning)
	require.Len(t, result.Parameters.Entities.OrderNumbers, 1)
	assert.Equal(t, "555123", result.Parameters.Entities.OrderNumbers[0].Value)
	assert.InDelta(t, 0.95, result.Parameters.Entities.OrderNumbers[0].Confidence, 1e-9)
}

func TestParsePostDelivery_MissingOrderWarning(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.ParsePostDelivery(context.Background(), Request{Text: "the bread is missing"})
	require.NoError(t, err)

	assert.Equal(t, nlu.IntentReportIssue, result.Intent)
	require.NotNil(t, result.Metadata)
	require.NotNil(t, result.Metadata.MissingOrderWarning)
	assert.True(t, *result.Metadata.MissingOrderWarning)
}

// ==========================================
// Batch
// ==========================================

func TestParseBatch(t *testing.T) {
	p := newTestPipeline(t, nil)

	batch := p.ParseBatch(context.Background(), []string{"hello", "cancel my order"}, nil, "")

	require.Equal(t, 2, batch.Count)
	require.Len(t, batch.Results, 2)
	assert.Equal(t, nlu.IntentGreeting, batch.Results[0].Intent)
	assert.Equal(t, nlu.IntentCancelOrder, batch.Results[1].Intent)
	for _, item := range batch.Results {
		assert.Empty(t, item.Error)
	}
}

// ==========================================
// Confidence Filtering
// ==========================================

func TestFilterEntities(t *testing.T) {
	p := newTestPipeline(t, nil)

	entities := entity.Entities{
		Products: []entity.Product{
			{Name: "oat milk", Confidence: 0.8},
			{Name: "Something Capitalized", Confidence: 0.3},
		},
		Quantities: []entity.Quantity{
			{Value: 2, Unit: "packs", Confidence: 0.7},
			{Value: 7, Confidence: 0.35},
		},
		Reasons: []entity.Reason{{Type: "missing", Value: "missing", Confidence: 0.2}},
	}

	p.filterEntities(&entities)

	require.Len(t, entities.Products, 1)
	assert.Equal(t, "oat milk", entities.Products[0].Name)
	require.Len(t, entities.Quantities, 1)
	assert.Equal(t, 2, entities.Quantities[0].Value)
	// Only products and quantities are confidence-filtered.
	assert.Len(t, entities.Reasons, 1)
}
