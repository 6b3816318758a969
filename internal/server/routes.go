package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	a := s.app

	// Pages. "/" also renders the not-found page for unknown paths.
	mux.Handle("/", a.HomeHandler)
	mux.Handle("/search", a.SearchHandler)
	mux.Handle("GET /stocks/{symbol}", a.StockHandler)
	mux.Handle("/etfs", a.ETFListHandler)
	mux.Handle("GET /etfs/{symbol}", a.ETFHandler)
	mux.Handle("/sp500", a.SP500Handler)
	mux.Handle("/nasdaq100", a.Nasdaq100Handler)
	mux.Handle("/mcp-info", a.MCPPageHandler)

	// Static files (CSS, JS)
	mux.HandleFunc("/static/", a.Pages.StaticFileHandler)

	// MCP endpoint (JSON-RPC over HTTP)
	if a.MCPHandler != nil {
		mux.Handle("/mcp", a.MCPHandler)
	}

	if a.Config.Metrics.Enabled && a.Metrics != nil {
		mux.Handle("GET "+a.Config.Metrics.Path, a.Metrics.Handler())
	}

	// API routes
	mux.Handle("/api/health", a.HealthHandler)
	mux.Handle("/api/server-health", a.ServerHealthHandler)
	mux.Handle("/api/version", a.VersionHandler)
	mux.Handle("GET /api/stocks/{symbol}/history", a.HistoryHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
