package server

import "net/http"

// registerRoutes wires all API endpoints onto the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Accounts and tokens
	mux.HandleFunc("/api/users", s.handleUsers)
	mux.HandleFunc("/api/auth/token", s.handleToken)

	// Query interpretation and matching
	mux.HandleFunc("/api/query", s.handleQuery)
	mux.HandleFunc("/api/stocks/search", s.handleStockSearch)
	mux.HandleFunc("/api/stocks/export", s.handleStockExport)

	// Cached index data
	mux.HandleFunc("/api/index/latest", s.handleIndexLatest)
	mux.HandleFunc("/api/index/top", s.handleIndexTop)
	mux.HandleFunc("/api/index", s.handleIndexCloseAbove)
	mux.HandleFunc("/api/admin/index", s.handleIndexImport)
}
