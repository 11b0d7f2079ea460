package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/models"
)

// GeminiEngine is an extraction engine backed by the Gemini API. It produces
// the same Document contract as the prose engine, which keeps interpretation
// logic independent of the concrete extraction capability.
type GeminiEngine struct {
	client interfaces.GeminiClient
	logger *common.Logger
}

// NewGeminiEngine creates a Gemini-backed extraction engine.
func NewGeminiEngine(client interfaces.GeminiClient, logger *common.Logger) *GeminiEngine {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &GeminiEngine{client: client, logger: logger}
}

const extractionPrompt = `Tag the entities and tokens in the text below.

Rules:
- Entities carry one label: MONEY (monetary amount, digits only, no currency
  symbol or separators), CARDINAL (plain number), ORG (company or
  organization), GPE (country, city, state), PERSON.
- List entities in order of appearance.
- Tokens are the words of the text in order; "lemma" is the lowercased base
  form of the word.
- Respond with JSON only, no prose, matching exactly:
  {"entities":[{"text":"...","label":"..."}],"tokens":[{"text":"...","lemma":"..."}]}

Text: %s`

// Extract tags the text via a single model call. Empty or whitespace-only
// text yields an empty document without calling the model.
func (e *GeminiEngine) Extract(ctx context.Context, text string) (*models.Document, error) {
	if strings.TrimSpace(text) == "" {
		return &models.Document{}, nil
	}

	raw, err := e.client.GenerateContent(ctx, fmt.Sprintf(extractionPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("gemini extraction failed: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(stripFences(raw)), &doc); err != nil {
		e.logger.Warn().Err(err).Msg("Gemini extraction returned unparseable output")
		return nil, fmt.Errorf("failed to parse extraction output: %w", err)
	}

	return &doc, nil
}

// stripFences removes a markdown code fence the model sometimes wraps
// around its JSON output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// Ensure GeminiEngine implements Extractor
var _ interfaces.Extractor = (*GeminiEngine)(nil)
