package server

import (
	"net/http"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// registerRoutes sets up all HTTP routes on the given mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Market data and analysis
	mux.HandleFunc("/api/stocks", s.handleStockList)
	mux.HandleFunc("/api/stocks/top10", s.handleTopStocks)
	mux.HandleFunc("/api/stocks/", s.routeStocks)

	// MCP tools over streamable HTTP
	if s.app.MCPServer != nil {
		mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(s.app.MCPServer, mcpserver.WithStateLess(true)))
	}
}

// routeStocks dispatches /api/stocks/{ticker}/... to the appropriate handler.
func (s *Server) routeStocks(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/stocks/")
	parts := strings.SplitN(path, "/", 2)
	ticker := parts[0]

	if ticker == "" || len(parts) < 2 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch parts[1] {
	case "history":
		s.handleStockHistory(w, r, ticker)
	case "analyze":
		s.handleStockAnalyze(w, r, ticker)
	case "quote":
		s.handleStockQuote(w, r, ticker)
	case "chart.png":
		s.handleStockChart(w, r, ticker)
	case "indicators":
		s.handleStockIndicators(w, r, ticker)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}
