package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/interfaces"
	"github.com/hmkang/stockquery/internal/models"
)

// indexStorage holds the cached historical index series, keyed by date.
type indexStorage struct {
	store  *Store
	logger *common.Logger
}

// NewIndexStorage creates an IndexStore backed by BadgerHold.
func NewIndexStorage(store *Store, logger *common.Logger) *indexStorage {
	return &indexStorage{store: store, logger: logger}
}

func (s *indexStorage) SaveBars(_ context.Context, bars []models.IndexBar) error {
	for _, bar := range bars {
		key := bar.Date.Format("2006-01-02")
		if err := s.store.db.Upsert(key, &bar); err != nil {
			return fmt.Errorf("failed to save index bar %s: %w", key, err)
		}
	}
	s.logger.Debug().Int("bars", len(bars)).Msg("Index bars saved")
	return nil
}

func (s *indexStorage) BarsSince(_ context.Context, since time.Time) ([]models.IndexBar, error) {
	var bars []models.IndexBar
	query := badgerhold.Where("Date").Ge(since).SortBy("Date").Reverse()
	if err := s.store.db.Find(&bars, query); err != nil {
		return nil, fmt.Errorf("failed to query index bars since %s: %w", since.Format("2006-01-02"), err)
	}
	return bars, nil
}

func (s *indexStorage) TopByClose(_ context.Context, n int) ([]models.IndexBar, error) {
	var bars []models.IndexBar
	query := badgerhold.Where("Close").Ge(float64(0)).SortBy("Close").Reverse().Limit(n)
	if err := s.store.db.Find(&bars, query); err != nil {
		return nil, fmt.Errorf("failed to query top index bars: %w", err)
	}
	return bars, nil
}

func (s *indexStorage) CloseAbove(_ context.Context, value float64) ([]models.IndexBar, error) {
	var bars []models.IndexBar
	query := badgerhold.Where("Close").Gt(value).SortBy("Date")
	if err := s.store.db.Find(&bars, query); err != nil {
		return nil, fmt.Errorf("failed to query index bars above %.2f: %w", value, err)
	}
	return bars, nil
}

// Ensure indexStorage implements IndexStore
var _ interfaces.IndexStore = (*indexStorage)(nil)
