// Package ticker resolves company references to exchange listings
package ticker

import (
	"context"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/models"
)

// placeholder stands in for fields the reference-data service omits.
const placeholder = "N/A"

// Service implements TickerService on top of the reference-data client.
type Service struct {
	polygon interfaces.PolygonClient
	logger  *common.Logger
}

// NewService creates a new ticker resolution service.
func NewService(polygon interfaces.PolygonClient, logger *common.Logger) *Service {
	return &Service{
		polygon: polygon,
		logger:  logger,
	}
}

// Resolve returns candidate listings for a company reference, in upstream
// response order. Transport and HTTP failures are logged for operators and
// reported as zero candidates; the caller cannot distinguish an outage from
// a genuine no-match, which is the intended degraded behavior.
func (s *Service) Resolve(ctx context.Context, company string) []models.TickerCandidate {
	results, err := s.polygon.SearchTickers(ctx, company)
	if err != nil {
		s.logger.Warn().Err(err).Str("company", company).Msg("Ticker search failed")
		return nil
	}

	candidates := make([]models.TickerCandidate, 0, len(results))
	for _, item := range results {
		candidates = append(candidates, models.TickerCandidate{
			Name:     orPlaceholder(item.Name),
			Ticker:   orPlaceholder(item.Ticker),
			Exchange: orPlaceholder(item.PrimaryExchange),
		})
	}

	return candidates
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// Ensure Service implements TickerService
var _ interfaces.TickerService = (*Service)(nil)
