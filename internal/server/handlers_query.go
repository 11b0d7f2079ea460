package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hmkang/stockquery/internal/models"
	"github.com/hmkang/stockquery/internal/services/export"
)

// queryRequest is the free-text question payload.
type queryRequest struct {
	Query string `json:"query"`
}

// queryResponse carries the interpreted intent plus candidate listings.
type queryResponse struct {
	CompanyOptions []models.TickerCandidate `json:"company_options"`
	Price          string                   `json:"price"`
	ComparisonType models.Comparison        `json:"comparison_type"`
}

// handleQuery interprets a free-text stock question and resolves the company
// reference to exchange listings.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req queryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	text := strings.TrimSpace(req.Query)
	if text == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "query is required", CodeValidation)
		return
	}

	intent, err := s.app.QueryService.Interpret(r.Context(), text)
	if err != nil {
		s.logger.Error().Err(err).Msg("Query interpretation failed")
		WriteError(w, http.StatusInternalServerError, "failed to interpret query")
		return
	}

	if intent.Price == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "could not identify a price in the query", CodeValidation)
		return
	}
	if intent.Company == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "could not identify a company in the query", CodeValidation)
		return
	}

	candidates := s.app.TickerService.Resolve(r.Context(), intent.Company)
	if len(candidates) == 0 {
		WriteErrorWithCode(w, http.StatusNotFound, "no listings found for company '"+intent.Company+"'", CodeNotFound)
		return
	}

	WriteJSON(w, http.StatusOK, queryResponse{
		CompanyOptions: candidates,
		Price:          intent.Price,
		ComparisonType: intent.Comparison,
	})
}

// stockRequest identifies a chosen listing plus the threshold to match.
type stockRequest struct {
	Ticker         string `json:"ticker"`
	Price          string `json:"price"`
	ComparisonType string `json:"comparison_type"`
}

// pricePointJSON is the wire form of one matched close.
type pricePointJSON struct {
	Date  string  `json:"Date"`
	Close float64 `json:"Close"`
}

// validate checks the request fields and returns the parsed threshold and
// comparison. On failure it writes the error response and returns ok=false.
func (req *stockRequest) validate(w http.ResponseWriter) (float64, models.Comparison, bool) {
	if strings.TrimSpace(req.Ticker) == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "ticker is required", CodeValidation)
		return 0, "", false
	}

	threshold, err := strconv.ParseFloat(strings.TrimSpace(req.Price), 64)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, "price must be a number", CodeValidation)
		return 0, "", false
	}

	cmp, err := models.ParseComparison(req.ComparisonType)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeValidation)
		return 0, "", false
	}

	return threshold, cmp, true
}

// handleStockSearch matches a ticker's historical closes against a threshold.
func (s *Server) handleStockSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req stockRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	threshold, cmp, ok := req.validate(w)
	if !ok {
		return
	}

	points, err := s.app.MatchService.Match(r.Context(), req.Ticker, threshold, cmp)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", req.Ticker).Msg("Price matching failed")
		WriteErrorWithCode(w, http.StatusNotFound, "no historical data found for ticker '"+req.Ticker+"'", CodeNotFound)
		return
	}
	if len(points) == 0 {
		WriteErrorWithCode(w, http.StatusNotFound, "no matching prices found for ticker '"+req.Ticker+"'", CodeNotFound)
		return
	}

	data := make([]pricePointJSON, 0, len(points))
	for _, p := range points {
		data = append(data, pricePointJSON{Date: p.DateString(), Close: p.Close})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ticker":          req.Ticker,
		"price":           req.Price,
		"comparison_type": string(cmp),
		"stock_data":      data,
	})
}

// handleStockExport returns the matched closes as an xlsx attachment.
func (s *Server) handleStockExport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req stockRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	threshold, cmp, ok := req.validate(w)
	if !ok {
		return
	}

	points, err := s.app.MatchService.Match(r.Context(), req.Ticker, threshold, cmp)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", req.Ticker).Msg("Price matching failed")
		WriteErrorWithCode(w, http.StatusNotFound, "no historical data found for ticker '"+req.Ticker+"'", CodeNotFound)
		return
	}

	book, err := s.app.ExportService.Workbook(points)
	if err != nil {
		s.logger.Error().Err(err).Msg("Workbook generation failed")
		WriteError(w, http.StatusInternalServerError, "failed to generate spreadsheet")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(req.Ticker)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(book)
}
