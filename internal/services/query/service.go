// Package query interprets free-text stock questions into structured intents
package query

import (
	"context"
	"strings"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/models"
)

// Service implements QueryService on top of an extraction engine.
type Service struct {
	extractor interfaces.Extractor
	logger    *common.Logger
}

// NewService creates a new query interpretation service.
func NewService(extractor interfaces.Extractor, logger *common.Logger) *Service {
	return &Service{
		extractor: extractor,
		logger:    logger,
	}
}

// Interpret extracts {company, price threshold, comparison direction} from
// free text. When the text names several candidates for a slot, the last one
// in appearance order wins. Missing company or price is not an error here;
// callers reject incomplete intents before any network call.
func (s *Service) Interpret(ctx context.Context, text string) (*models.Intent, error) {
	doc, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}

	intent := &models.Intent{
		Comparison: models.ComparisonGreaterOrEqual,
	}

	for _, ent := range doc.Entities {
		switch ent.Label {
		case models.LabelMoney, models.LabelCardinal:
			intent.Price = ent.Text
		case models.LabelOrg, models.LabelGPE:
			intent.Company = ent.Text
		}
	}

	for _, tok := range doc.Tokens {
		if strings.Contains(tok.Lemma, "exceed") ||
			strings.Contains(tok.Text, "greater") ||
			strings.Contains(tok.Text, "above") {
			intent.Comparison = models.ComparisonGreaterOrEqual
		} else if strings.Contains(tok.Text, "less") ||
			strings.Contains(tok.Text, "below") {
			intent.Comparison = models.ComparisonLessOrEqual
		}
	}

	s.logger.Debug().
		Str("company", intent.Company).
		Str("price", intent.Price).
		Str("comparison", string(intent.Comparison)).
		Msg("Query interpreted")

	return intent, nil
}

// Ensure Service implements QueryService
var _ interfaces.QueryService = (*Service)(nil)
