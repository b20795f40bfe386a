// Package entity defines the core business entities for the domain layer.
package entity

// InsightType classifies the tone of a derived insight. The values are the
// ones serialized to clients, so they stay in Portuguese like the rest of
// the report vocabulary.
type InsightType string

const (
	InsightPositive InsightType = "positivo"
	InsightNegative InsightType = "negativo"
	InsightNeutral  InsightType = "neutro"
)

// Insight is a derived, advisory observation about a user's spending.
// It carries no identity and is never persisted; it is rebuilt on every
// report computation.
type Insight struct {
	Type    InsightType
	Message string
	Icon    string
}
