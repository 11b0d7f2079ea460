// Package match filters historical closing prices against a threshold
package match

import (
	"context"
	"math"
	"sort"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/models"
)

// DefaultMaxMatches caps the number of price points returned per match.
const DefaultMaxMatches = 10

// Service implements MatchService on top of the market-data provider.
type Service struct {
	eodhd      interfaces.EODHDClient
	logger     *common.Logger
	maxMatches int
}

// NewService creates a new price series matching service.
// maxMatches <= 0 falls back to the default cap of 10.
func NewService(eodhd interfaces.EODHDClient, logger *common.Logger, maxMatches int) *Service {
	if maxMatches <= 0 {
		maxMatches = DefaultMaxMatches
	}
	return &Service{
		eodhd:      eodhd,
		logger:     logger,
		maxMatches: maxMatches,
	}
}

// Match fetches the full available daily series for the ticker, keeps rows
// satisfying the comparison, and returns the closest matches to the
// threshold. Ties in distance preserve chronological order. An empty
// provider series (unknown or delisted symbol) is a valid empty result.
func (s *Service) Match(ctx context.Context, ticker string, threshold float64, cmp models.Comparison) ([]models.PricePoint, error) {
	resp, err := s.eodhd.GetEOD(ctx, ticker, interfaces.WithOrder("a"))
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		s.logger.Debug().Str("ticker", ticker).Msg("Empty historical series")
		return nil, nil
	}

	matches := make([]models.PricePoint, 0, len(resp.Data))
	for _, bar := range resp.Data {
		keep := false
		switch cmp {
		case models.ComparisonGreaterOrEqual:
			keep = bar.Close >= threshold
		case models.ComparisonLessOrEqual:
			keep = bar.Close <= threshold
		}
		if keep {
			matches = append(matches, models.PricePoint{
				Date:  bar.Date,
				Close: bar.Close,
			})
		}
	}

	// Stable sort keeps the series' chronological order for equal distances
	sort.SliceStable(matches, func(i, j int) bool {
		return math.Abs(matches[i].Close-threshold) < math.Abs(matches[j].Close-threshold)
	})

	if len(matches) > s.maxMatches {
		matches = matches[:s.maxMatches]
	}

	s.logger.Debug().
		Str("ticker", ticker).
		Float64("threshold", threshold).
		Int("matches", len(matches)).
		Msg("Price series matched")

	return matches, nil
}

// Ensure Service implements MatchService
var _ interfaces.MatchService = (*Service)(nil)
