package server

import (
	"net/http"
	"strconv"

	"github.com/hmkang/stockquery/internal/models"
	"github.com/hmkang/stockquery/internal/services/index"
)

// handleIndexLatest returns the most recent window of cached index bars.
func (s *Server) handleIndexLatest(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	bars, err := s.app.IndexService.Latest(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Latest index lookup failed")
		WriteError(w, http.StatusInternalServerError, "failed to load index data")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(bars),
		"data":  bars,
	})
}

// handleIndexTop returns the n highest closes in the cached series.
func (s *Server) handleIndexTop(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	n := index.DefaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteErrorWithCode(w, http.StatusBadRequest, "n must be a positive integer", CodeValidation)
			return
		}
		n = parsed
	}

	bars, err := s.app.IndexService.TopByClose(r.Context(), n)
	if err != nil {
		s.logger.Error().Err(err).Msg("Top-close index lookup failed")
		WriteError(w, http.StatusInternalServerError, "failed to load index data")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(bars),
		"data":  bars,
	})
}

// handleIndexCloseAbove filters cached bars by a close price floor.
func (s *Server) handleIndexCloseAbove(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	raw := r.URL.Query().Get("close_price")
	if raw == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "close_price query parameter is required", CodeValidation)
		return
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, "close_price must be a number", CodeValidation)
		return
	}

	bars, err := s.app.IndexService.CloseAbove(r.Context(), value)
	if err != nil {
		s.logger.Error().Err(err).Msg("Close-above index lookup failed")
		WriteError(w, http.StatusInternalServerError, "failed to load index data")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(bars),
		"data":  bars,
	})
}

// indexImportRequest is the bulk-load payload for the admin import endpoint.
type indexImportRequest struct {
	Data []models.IndexBar `json:"data"`
}

// handleIndexImport bulk-loads index bars into the local store. Requires an
// authenticated caller.
func (s *Server) handleIndexImport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if _, ok := UsernameFromContext(r.Context()); !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req indexImportRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if len(req.Data) == 0 {
		WriteErrorWithCode(w, http.StatusBadRequest, "data must contain at least one bar", CodeValidation)
		return
	}
	for _, bar := range req.Data {
		if bar.Date.IsZero() {
			WriteErrorWithCode(w, http.StatusBadRequest, "every bar requires a date", CodeValidation)
			return
		}
	}

	if err := s.app.IndexService.Import(r.Context(), req.Data); err != nil {
		s.logger.Error().Err(err).Msg("Index import failed")
		WriteError(w, http.StatusInternalServerError, "failed to import index data")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"imported": len(req.Data),
	})
}
