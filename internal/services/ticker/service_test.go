package ticker

import (
	"context"
	"errors"
	"testing"

	"github.com/hmkang/stockquery/internal/common"
	"github.com/hmkang/stockquery/internal/models"
)

// stubPolygon returns canned search results.
type stubPolygon struct {
	results []*models.TickerSearchResult
	err     error
	term    string
}

func (s *stubPolygon) SearchTickers(_ context.Context, term string) ([]*models.TickerSearchResult, error) {
	s.term = term
	return s.results, s.err
}

func TestResolve_MapsResultsInOrder(t *testing.T) {
	client := &stubPolygon{
		results: []*models.TickerSearchResult{
			{Name: "Apple Inc.", Ticker: "AAPL", PrimaryExchange: "XNAS"},
			{Name: "Apple Hospitality REIT", Ticker: "APLE", PrimaryExchange: "XNYS"},
		},
	}
	svc := NewService(client, common.NewSilentLogger())

	candidates := svc.Resolve(context.Background(), "Apple")

	if client.term != "Apple" {
		t.Errorf("search term = %q, want Apple", client.term)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Ticker != "AAPL" || candidates[1].Ticker != "APLE" {
		t.Errorf("upstream order not preserved: %v", candidates)
	}
	if candidates[0].Name != "Apple Inc." || candidates[0].Exchange != "XNAS" {
		t.Errorf("candidate fields not mapped: %+v", candidates[0])
	}
}

func TestResolve_EmptyFieldsGetPlaceholder(t *testing.T) {
	client := &stubPolygon{
		results: []*models.TickerSearchResult{
			{Name: "Mystery Corp", Ticker: "MYST"},
		},
	}
	svc := NewService(client, common.NewSilentLogger())

	candidates := svc.Resolve(context.Background(), "Mystery")
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Exchange != "N/A" {
		t.Errorf("Exchange = %q, want N/A placeholder", candidates[0].Exchange)
	}
}

func TestResolve_UpstreamErrorYieldsNoCandidates(t *testing.T) {
	client := &stubPolygon{err: errors.New("connection refused")}
	svc := NewService(client, common.NewSilentLogger())

	candidates := svc.Resolve(context.Background(), "Amazon")
	if len(candidates) != 0 {
		t.Errorf("expected no candidates on upstream failure, got %v", candidates)
	}
}

func TestResolve_NoResults(t *testing.T) {
	svc := NewService(&stubPolygon{}, common.NewSilentLogger())
	candidates := svc.Resolve(context.Background(), "Nonexistent Company XYZ")
	if len(candidates) != 0 {
		t.Errorf("expected empty slice, got %v", candidates)
	}
}
