package interfaces

import (
	"context"

	"github.com/hmkang/stockquery/internal/models"
)

// Extractor turns free text into a linguistic structure: category-tagged
// entities plus lexical tokens with lemma forms. Implementations are
// swappable; interpretation logic depends only on this contract.
// Degenerate input yields an empty document, not an error.
type Extractor interface {
	Extract(ctx context.Context, text string) (*models.Document, error)
}

// QueryService interprets free-text stock questions into structured intents.
type QueryService interface {
	// Interpret never fails on missing company or price; callers must reject
	// incomplete intents before resolving or matching.
	Interpret(ctx context.Context, text string) (*models.Intent, error)
}

// TickerService resolves a company reference to exchange listings.
type TickerService interface {
	// Resolve returns candidates in upstream response order. Upstream failures
	// are logged and reported as zero candidates, never as errors.
	Resolve(ctx context.Context, company string) []models.TickerCandidate
}

// MatchService selects historical daily closes against a price threshold.
type MatchService interface {
	// Match returns at most 10 price points satisfying the comparison,
	// ordered by absolute distance to the threshold (closest first), with
	// earlier dates winning ties. An unknown ticker yields an empty result.
	Match(ctx context.Context, ticker string, threshold float64, cmp models.Comparison) ([]models.PricePoint, error)
}

// ExportService renders ranked price points as a spreadsheet byte stream.
type ExportService interface {
	Workbook(points []models.PricePoint) ([]byte, error)
}

// IndexService serves cached historical index-level data.
type IndexService interface {
	// Latest returns bars from the most recent window, newest first.
	Latest(ctx context.Context) ([]models.IndexBar, error)

	// TopByClose returns the n bars with the highest closes, highest first.
	TopByClose(ctx context.Context, n int) ([]models.IndexBar, error)

	// CloseAbove returns bars whose close exceeds the given value, by date.
	CloseAbove(ctx context.Context, value float64) ([]models.IndexBar, error)

	// Import bulk-loads bars into the local store.
	Import(ctx context.Context, bars []models.IndexBar) error
}
