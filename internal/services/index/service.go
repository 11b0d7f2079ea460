// Package index serves cached historical index-level data
package index

import (
	"context"
	"time"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/models"
)

const (
	// LatestWindowDays is the lookback for the "latest" query.
	LatestWindowDays = 10

	// DefaultTopN is the number of bars returned by TopByClose when the
	// caller does not say otherwise.
	DefaultTopN = 3
)

// Service implements IndexService on top of the index store.
type Service struct {
	store  interfaces.IndexStore
	logger *common.Logger
	now    func() time.Time // injectable clock for testing
}

// NewService creates a new index history service.
func NewService(store interfaces.IndexStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Latest returns bars from the last LatestWindowDays calendar days,
// newest first.
func (s *Service) Latest(ctx context.Context) ([]models.IndexBar, error) {
	since := s.now().AddDate(0, 0, -LatestWindowDays)
	return s.store.BarsSince(ctx, since)
}

// TopByClose returns the n highest closes on record, highest first.
func (s *Service) TopByClose(ctx context.Context, n int) ([]models.IndexBar, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	return s.store.TopByClose(ctx, n)
}

// CloseAbove returns bars whose close exceeds the given value, by date.
func (s *Service) CloseAbove(ctx context.Context, value float64) ([]models.IndexBar, error) {
	return s.store.CloseAbove(ctx, value)
}

// Import bulk-loads bars into the store, overwriting same-date entries.
func (s *Service) Import(ctx context.Context, bars []models.IndexBar) error {
	if err := s.store.SaveBars(ctx, bars); err != nil {
		return err
	}
	s.logger.Info().Int("bars", len(bars)).Msg("Index bars imported")
	return nil
}

// Ensure Service implements IndexService
var _ interfaces.IndexService = (*Service)(nil)
