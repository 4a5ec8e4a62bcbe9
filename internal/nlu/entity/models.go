// internal/nlu/entity/models.go
package entity

import (
	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
)

// Product is a catalog-matched product mention.
type Product struct {
	Name       string  `json:"name"`
	GTIN       string  `json:"gtin,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Quantity is a numeric amount with its spoken unit.
type Quantity struct {
	Value      int     `json:"value"`
	Unit       string  `json:"unit"`
	Confidence float64 `json:"confidence"`
}

// OrderNumber is a normalized order reference (uppercased, spaces removed).
// Source is set when the value came from conversation context rather than
// the utterance itself.
type OrderNumber struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	RawMatch   string  `json:"raw_match,omitempty"`
	Source     string  `json:"source,omitempty"`
}

// Date is a relative, specific, or spoken date mention. OffsetDays is only
// set for relative dates with a known day offset.
type Date struct {
	Value      string  `json:"value"`
	Type       string  `json:"type"`
	OffsetDays *int    `json:"offset_days,omitempty"`
	Confidence float64 `json:"confidence"`
	RawMatch   string  `json:"raw_match,omitempty"`
}

// Reason categorizes why an issue is being reported.
type Reason struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Sentiment is the overall polarity of the utterance.
type Sentiment struct {
	Polarity   string  `json:"polarity"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// Urgency is the time-pressure level of the utterance.
type Urgency struct {
	Level      string  `json:"level"`
	Confidence float64 `json:"confidence"`
}

// Entities is the full extraction result for one utterance.
type Entities struct {
	Products     []Product     `json:"products"`
	Quantities   []Quantity    `json:"quantities"`
	OrderNumbers []OrderNumber `json:"order_numbers"`
	Dates        []Date        `json:"dates"`
	Reasons      []Reason      `json:"reasons"`
	Sentiment    Sentiment     `json:"sentiment"`
	Urgency      Urgency       `json:"urgency"`
	Language     nlu.Language  `json:"language"`
}

// Entity type names accepted as priority hints.
const (
	TypeProducts     = "products"
	TypeQuantities   = "quantities"
	TypeOrderNumbers = "order_numbers"
	TypeDates        = "dates"
	TypeReasons      = "reasons"
	TypeSentiment    = "sentiment"
	TypeUrgency      = "urgency"
)

const (
	PolarityPositive = "positive"
	PolarityNegative = "negative"
	PolarityNeutral  = "neutral"
)

const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)
