// Package models defines the core data types for stockquery
package models

import (
	"fmt"
	"time"
)

// Entity labels produced by the extraction engine. The label set is fixed;
// interpretation logic depends on these exact values.
const (
	LabelMoney    = "MONEY"
	LabelCardinal = "CARDINAL"
	LabelOrg      = "ORG"
	LabelGPE      = "GPE"
	LabelPerson   = "PERSON"
)

// Entity is a category-tagged span of the input text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Token is a single lexical token with its normalized (lemma) form.
type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
}

// Document is the linguistic structure produced by an extraction engine.
// Entities and Tokens are both in order of appearance.
type Document struct {
	Entities []Entity `json:"entities"`
	Tokens   []Token  `json:"tokens"`
}

// Comparison is the direction a close price must satisfy relative to the threshold.
type Comparison string

const (
	ComparisonGreaterOrEqual Comparison = "greater_than_equal"
	ComparisonLessOrEqual    Comparison = "less_than_equal"
)

// ParseComparison validates a textual comparison type.
func ParseComparison(s string) (Comparison, error) {
	switch Comparison(s) {
	case ComparisonGreaterOrEqual, ComparisonLessOrEqual:
		return Comparison(s), nil
	}
	return "", fmt.Errorf("invalid comparison type '%s'", s)
}

// Intent is the structured result of interpreting a free-text stock query.
// Company and Price may be empty; Comparison is always set.
type Intent struct {
	Company    string     `json:"company"`
	Price      string     `json:"price"`
	Comparison Comparison `json:"comparison_type"`
}

// Complete reports whether the intent carries both mandatory fields.
func (i *Intent) Complete() bool {
	return i.Company != "" && i.Price != ""
}

// TickerCandidate is one possible listing for a company reference.
type TickerCandidate struct {
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange"`
}

// PricePoint is a single daily close in a ticker's historical series.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// DateString returns the calendar date in ISO form (no time component).
func (p PricePoint) DateString() string {
	return p.Date.Format("2006-01-02")
}
