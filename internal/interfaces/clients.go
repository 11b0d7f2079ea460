// Package interfaces defines service contracts for stockquery
package interfaces

import (
	"context"
	"time"

	"github.com/hmkang/stockquery/internal/models"
)

// PolygonClient provides access to the company/ticker reference-data service.
type PolygonClient interface {
	// SearchTickers searches currently-active listings matching the term.
	SearchTickers(ctx context.Context, term string) ([]*models.TickerSearchResult, error)
}

// EODHDClient provides access to the historical market-data provider.
type EODHDClient interface {
	// GetEOD retrieves end-of-day price data. Without a date range option the
	// provider returns the maximal available series.
	GetEOD(ctx context.Context, ticker string, opts ...EODOption) (*models.EODResponse, error)
}

// GeminiClient provides access to the Gemini API.
type GeminiClient interface {
	// GenerateContent generates text from a prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// EODOption configures EOD data requests
type EODOption func(*EODParams)

// EODParams holds EOD query parameters
type EODParams struct {
	From   time.Time
	To     time.Time
	Period string // d=daily, w=weekly, m=monthly
	Order  string // a=ascending, d=descending
}

// WithDateRange sets the date range for EOD query
func WithDateRange(from, to time.Time) EODOption {
	return func(p *EODParams) {
		p.From = from
		p.To = to
	}
}

// WithPeriod sets the period for EOD query
func WithPeriod(period string) EODOption {
	return func(p *EODParams) {
		p.Period = period
	}
}

// WithOrder sets the sort order for EOD query
func WithOrder(order string) EODOption {
	return func(p *EODParams) {
		p.Order = order
	}
}
