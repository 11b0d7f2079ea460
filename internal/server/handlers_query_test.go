package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hmkang/stockquery/internal/app"
	"github.com/hmkang/stockquery/internal/models"
	"github.com/hmkang/stockquery/internal/services/export"
)

func somePoints() []models.PricePoint {
	return []models.PricePoint{
		{Date: time.Date(2020, 7, 9, 0, 0, 0, 0, time.UTC), Close: 3182.63},
		{Date: time.Date(2020, 7, 10, 0, 0, 0, 0, time.UTC), Close: 3200.00},
	}
}

// --- /api/query ---

func TestHandleQuery_Success(t *testing.T) {
	srv := newTestServer(&app.App{
		QueryService: &stubQueryService{intent: &models.Intent{
			Company:    "Amazon",
			Price:      "2000",
			Comparison: models.ComparisonGreaterOrEqual,
		}},
		TickerService: &stubTickerService{candidates: []models.TickerCandidate{
			{Name: "Amazon.com Inc.", Ticker: "AMZN", Exchange: "XNAS"},
		}},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/query", jsonBody(t, map[string]string{
		"query": "Did Amazon's stock price ever exceed $2000",
	}))
	rec := httptest.NewRecorder()
	srv.handleQuery(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp queryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Price != "2000" {
		t.Errorf("price = %q", resp.Price)
	}
	if resp.ComparisonType != models.ComparisonGreaterOrEqual {
		t.Errorf("comparison_type = %q", resp.ComparisonType)
	}
	if len(resp.CompanyOptions) != 1 || resp.CompanyOptions[0].Ticker != "AMZN" {
		t.Errorf("company_options = %v", resp.CompanyOptions)
	}
}

func TestHandleQuery_MissingQuery(t *testing.T) {
	srv := newTestServer(&app.App{})

	req := httptest.NewRequest(http.MethodPost, "/api/query", jsonBody(t, map[string]string{"query": "  "}))
	rec := httptest.NewRecorder()
	srv.handleQuery(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleQuery_NoPriceInQuery(t *testing.T) {
	srv := newTestServer(&app.App{
		QueryService: &stubQueryService{intent: &models.Intent{
			Company:    "Amazon",
			Comparison: models.ComparisonGreaterOrEqual,
		}},
		// No network-backed services needed; validation rejects first
	})

	req := httptest.NewRequest(http.MethodPost, "/api/query", jsonBody(t, map[string]string{
		"query": "tell me about Amazon",
	}))
	rec := httptest.NewRecorder()
	srv.handleQuery(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var body ErrorResponse
	json.NewDecoder(rec.Body).Decode(&body)
	if body.Code != CodeValidation {
		t.Errorf("code = %q, want %q", body.Code, CodeValidation)
	}
}

func TestHandleQuery_NoCompanyInQuery(t *testing.T) {
	srv := newTestServer(&app.App{
		QueryService: &stubQueryService{intent: &models.Intent{
			Price:      "2000",
			Comparison: models.ComparisonGreaterOrEqual,
		}},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/query", jsonBody(t, map[string]string{
		"query": "ever exceed 2000",
	}))
	rec := httptest.NewRecorder()
	srv.handleQuery(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleQuery_NoListingsFound(t *testing.T) {
	srv := newTestServer(&app.App{
		QueryService: &stubQueryService{intent: &models.Intent{
			Company:    "Nonexistent Corp",
			Price:      "100",
			Comparison: models.ComparisonGreaterOrEqual,
		}},
		TickerService: &stubTickerService{},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/query", jsonBody(t, map[string]string{
		"query": "did Nonexistent Corp exceed 100",
	}))
	rec := httptest.NewRecorder()
	srv.handleQuery(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var body ErrorResponse
	json.NewDecoder(rec.Body).Decode(&body)
	if body.Code != CodeNotFound {
		t.Errorf("code = %q, want %q", body.Code, CodeNotFound)
	}
}

func TestHandleQuery_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(&app.App{})

	req := httptest.NewRequest(http.MethodGet, "/api/query", nil)
	rec := httptest.NewRecorder()
	srv.handleQuery(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

// --- /api/stocks/search ---

func TestHandleStockSearch_Success(t *testing.T) {
	match := &stubMatchService{points: somePoints()}
	srv := newTestServer(&app.App{MatchService: match})

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/search", jsonBody(t, map[string]string{
		"ticker":          "AMZN",
		"price":           "2000",
		"comparison_type": "greater_than_equal",
	}))
	rec := httptest.NewRecorder()
	srv.handleStockSearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if match.ticker != "AMZN" || match.cmp != models.ComparisonGreaterOrEqual {
		t.Errorf("match called with ticker=%q cmp=%q", match.ticker, match.cmp)
	}

	var resp struct {
		Ticker    string           `json:"ticker"`
		StockData []pricePointJSON `json:"stock_data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Ticker != "AMZN" {
		t.Errorf("ticker = %q", resp.Ticker)
	}
	if len(resp.StockData) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp.StockData))
	}
	if resp.StockData[0].Date != "2020-07-09" || resp.StockData[0].Close != 3182.63 {
		t.Errorf("first row = %+v", resp.StockData[0])
	}
}

func TestHandleStockSearch_InvalidPrice(t *testing.T) {
	srv := newTestServer(&app.App{})

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/search", jsonBody(t, map[string]string{
		"ticker":          "AMZN",
		"price":           "two thousand",
		"comparison_type": "greater_than_equal",
	}))
	rec := httptest.NewRecorder()
	srv.handleStockSearch(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStockSearch_InvalidComparison(t *testing.T) {
	srv := newTestServer(&app.App{})

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/search", jsonBody(t, map[string]string{
		"ticker":          "AMZN",
		"price":           "2000",
		"comparison_type": "bigger",
	}))
	rec := httptest.NewRecorder()
	srv.handleStockSearch(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStockSearch_NoMatches(t *testing.T) {
	srv := newTestServer(&app.App{MatchService: &stubMatchService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/search", jsonBody(t, map[string]string{
		"ticker":          "AMZN",
		"price":           "999999",
		"comparison_type": "greater_than_equal",
	}))
	rec := httptest.NewRecorder()
	srv.handleStockSearch(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleStockSearch_ProviderError(t *testing.T) {
	srv := newTestServer(&app.App{MatchService: &stubMatchService{err: errStub}})

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/search", jsonBody(t, map[string]string{
		"ticker":          "BAD",
		"price":           "100",
		"comparison_type": "less_than_equal",
	}))
	rec := httptest.NewRecorder()
	srv.handleStockSearch(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for unknown ticker", rec.Code)
	}
}

// --- /api/stocks/export ---

func TestHandleStockExport_Success(t *testing.T) {
	srv := newTestServer(&app.App{
		MatchService:  &stubMatchService{points: somePoints()},
		ExportService: export.NewService(testLogger()),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/export", jsonBody(t, map[string]string{
		"ticker":          "AMZN",
		"price":           "2000",
		"comparison_type": "greater_than_equal",
	}))
	rec := httptest.NewRecorder()
	srv.handleStockExport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != export.ContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if cd != `attachment; filename="AMZN_stock_data.xlsx"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("body does not look like an xlsx file")
	}
}

func TestHandleStockExport_InvalidBody(t *testing.T) {
	srv := newTestServer(&app.App{})

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/export", jsonBody(t, map[string]string{
		"ticker": "",
	}))
	rec := httptest.NewRecorder()
	srv.handleStockExport(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
