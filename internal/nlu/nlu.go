// internal/nlu/nlu.go

// Package nlu defines the shared vocabulary of the NLU pipeline: supported
// languages, the closed intent set, conversation stages, and pattern helpers
// used by the classifier and extractor packages.
package nlu

// Language is an ISO 639-1 code of a supported input language.
type Language string

const (
	LangEnglish Language = "en"
	LangFinnish Language = "fi"
	LangSwedish Language = "sv"
)

// Supported reports whether the language is one the pipeline handles.
func (l Language) Supported() bool {
	switch l {
	case LangEnglish, LangFinnish, LangSwedish:
		return true
	}
	return false
}

// Intent is a customer communicative goal from the closed intent set.
type Intent string

const (
	IntentConfirmSubstitution Intent = "confirm_substitution"
	IntentRejectSubstitution  Intent = "reject_substitution"
	IntentRequestCallback     Intent = "request_callback"
	IntentReportIssue         Intent = "report_issue"
	IntentConfirmDelivery     Intent = "confirm_delivery"
	IntentQueryOrderStatus    Intent = "query_order_status"
	IntentProvideFeedback     Intent = "provide_feedback"
	IntentQuerySubstitution   Intent = "query_substitution"
	IntentThankYou            Intent = "thank_you"
	IntentChangeDelivery      Intent = "change_delivery"
	IntentCancelOrder         Intent = "cancel_order"
	IntentQueryProducts       Intent = "query_products"
	IntentGreeting            Intent = "greeting"
	IntentUnknown             Intent = "unknown"
)

// Intents lists every classifiable intent in fixed order. The order matters:
// score ties between intents are broken by first position in this list.
var Intents = []Intent{
	IntentConfirmSubstitution,
	IntentRejectSubstitution,
	IntentRequestCallback,
	IntentReportIssue,
	IntentConfirmDelivery,
	IntentQueryOrderStatus,
	IntentProvideFeedback,
	IntentQuerySubstitution,
	IntentThankYou,
	IntentChangeDelivery,
	IntentCancelOrder,
	IntentQueryProducts,
	IntentGreeting,
}

// Valid reports whether the intent belongs to the closed vocabulary.
func (i Intent) Valid() bool {
	if i == IntentUnknown {
		return true
	}
	for _, known := range Intents {
		if i == known {
			return true
		}
	}
	return false
}

// Conversation stages supplied via context by the dialog orchestrator.
const (
	StagePreOrderSubstitution      = "pre_order_substitution"
	StagePostDeliveryInvestigation = "post_delivery_investigation"
)

// Context keys with defined meaning across the pipeline.
const (
	CtxConversationStage   = "conversation_stage"
	CtxProposedSubstitute  = "proposed_substitute"
	CtxOriginalProduct     = "original_product"
	CtxProposedSolution    = "proposed_solution"
	CtxOrderNumber         = "order_number"
	CtxDetectedDiscrepancy = "detected_discrepancy"
	CtxPreviousIntents     = "previous_intents"
	CtxLastIntent          = "last_intent"
	CtxInteractionCount    = "interaction_count"
	CtxSessionContext      = "session_context"
)

// Word wraps a pattern fragment in explicit letter/digit boundaries. RE2's
// \b only recognizes ASCII word characters, so patterns containing accented
// Finnish or Swedish letters need their own boundary classes.
func Word(expr string) string {
	return `(?:^|[^\p{L}\p{N}])(?:` + expr + `)(?:[^\p{L}\p{N}]|$)`
}
