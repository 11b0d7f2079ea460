// Package nlp provides the entity/token extraction engine used by query
// interpretation. The engine is a black-box capability: it emits
// category-tagged entities (MONEY, CARDINAL, ORG, GPE) and lexical tokens
// with lemma forms, and can be swapped for any other interfaces.Extractor.
package nlp

import (
	"context"
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"

	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/models"
)

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the process-wide extraction engine. The underlying model is
// loaded once, on first use, so per-request latency excludes startup cost.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = NewEngine()
	})
	return defaultEngine
}

// Engine is the prose-backed extraction engine. It is stateless and safe for
// concurrent use.
type Engine struct{}

// NewEngine creates an extraction engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Extract parses text into entities and tokens. Empty or whitespace-only text
// yields an empty document, not an error.
func (e *Engine) Extract(_ context.Context, text string) (*models.Document, error) {
	if strings.TrimSpace(text) == "" {
		return &models.Document{}, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}

	out := &models.Document{}

	tokens := doc.Tokens()
	for _, tok := range tokens {
		out.Tokens = append(out.Tokens, models.Token{
			Text:  tok.Text,
			Lemma: Lemma(tok.Text),
		})
	}

	out.Entities = labelEntities(tokens)

	return out, nil
}

// labelEntities walks the token stream once and emits entities in order of
// appearance. Prose's NER supplies PERSON/GPE spans via IOB token labels;
// monetary and numeric spans come from currency/CD tags, and runs of proper
// nouns outside any NER span are treated as ORG references.
func labelEntities(tokens []prose.Token) []models.Entity {
	var entities []models.Entity

	var nerText []string
	nerLabel := ""
	var orgText []string
	pendingCurrency := false

	flushNER := func() {
		if len(nerText) > 0 {
			entities = append(entities, models.Entity{
				Text:  strings.Join(nerText, " "),
				Label: nerLabel,
			})
			nerText = nil
			nerLabel = ""
		}
	}
	flushOrg := func() {
		if len(orgText) > 0 {
			entities = append(entities, models.Entity{
				Text:  strings.Join(orgText, " "),
				Label: models.LabelOrg,
			})
			orgText = nil
		}
	}

	for _, tok := range tokens {
		// NER spans from prose (B-/I- IOB labels)
		if label, cont := iobLabel(tok.Label); label != "" {
			flushOrg()
			if !cont {
				flushNER()
			}
			if nerLabel == "" {
				nerLabel = label
			}
			nerText = append(nerText, tok.Text)
			pendingCurrency = false
			continue
		}
		flushNER()

		// Currency symbol starts a monetary amount
		if isCurrency(tok.Text) {
			flushOrg()
			pendingCurrency = true
			continue
		}

		// Numeric token: MONEY when preceded by (or fused with) a currency
		// symbol, CARDINAL otherwise
		if tok.Tag == "CD" || hasCurrencyPrefix(tok.Text) {
			flushOrg()
			label := models.LabelCardinal
			if pendingCurrency || hasCurrencyPrefix(tok.Text) {
				label = models.LabelMoney
			}
			entities = append(entities, models.Entity{
				Text:  normalizeAmount(tok.Text),
				Label: label,
			})
			pendingCurrency = false
			continue
		}
		pendingCurrency = false

		// Proper-noun runs become ORG references
		if tok.Tag == "NNP" || tok.Tag == "NNPS" {
			orgText = append(orgText, tok.Text)
			continue
		}
		flushOrg()
	}
	flushNER()
	flushOrg()

	return entities
}

// iobLabel maps a prose IOB token label ("B-GPE", "I-PERSON") to the entity
// label set, and reports whether the token continues the current span.
func iobLabel(label string) (string, bool) {
	var tag string
	cont := false
	switch {
	case strings.HasPrefix(label, "B-"):
		tag = label[2:]
	case strings.HasPrefix(label, "I-"):
		tag = label[2:]
		cont = true
	default:
		return "", false
	}

	switch tag {
	case "GPE":
		return models.LabelGPE, cont
	case "PERSON":
		return models.LabelPerson, cont
	}
	return "", false
}

func isCurrency(text string) bool {
	switch text {
	case "$", "€", "£", "¥", "₩":
		return true
	}
	return false
}

func hasCurrencyPrefix(text string) bool {
	return len(text) > 1 && isCurrency(string([]rune(text)[0])) && hasDigit(text)
}

func hasDigit(text string) bool {
	for _, r := range text {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// normalizeAmount strips currency symbols and thousands separators so the
// threshold text parses as a plain decimal downstream.
func normalizeAmount(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return text
	}
	return b.String()
}

// Ensure Engine implements Extractor
var _ interfaces.Extractor = (*Engine)(nil)
