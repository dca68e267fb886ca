package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bobmcallan/realticker/internal/common"
	"github.com/bobmcallan/realticker/internal/services/market"
)

// MaxHistoryMonths bounds the months query parameter on history and chart requests
const MaxHistoryMonths = 24

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"message": "RealTicker API is running with mock data",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
		"analyst": s.app.AnalystName(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

func (s *Server) handleStockList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"stocks": s.app.MarketService.ListStocks(),
	})
}

func (s *Server) handleTopStocks(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	sortBy := r.URL.Query().Get("sort_by")
	WriteJSON(w, http.StatusOK, s.app.MarketService.GetTopStocks(sortBy))
}

func (s *Server) handleStockQuote(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	quote, err := s.app.MarketService.GetQuote(ticker)
	if err != nil {
		s.writeLookupError(w, ticker, err)
		return
	}
	WriteJSON(w, http.StatusOK, quote)
}

func (s *Server) handleStockHistory(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	months, ok := parseMonths(w, r)
	if !ok {
		return
	}
	history, err := s.app.MarketService.GetHistory(ticker, months)
	if err != nil {
		s.writeLookupError(w, ticker, err)
		return
	}
	WriteJSON(w, http.StatusOK, history)
}

func (s *Server) handleStockChart(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	months, ok := parseMonths(w, r)
	if !ok {
		return
	}
	history, err := s.app.MarketService.GetHistory(ticker, months)
	if err != nil {
		s.writeLookupError(w, ticker, err)
		return
	}

	png, err := market.RenderHistoryChart(history)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", history.Ticker).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, "Chart rendering failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) handleStockIndicators(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	months, ok := parseMonths(w, r)
	if !ok {
		return
	}
	history, err := s.app.MarketService.GetHistory(ticker, months)
	if err != nil {
		s.writeLookupError(w, ticker, err)
		return
	}
	WriteJSON(w, http.StatusOK, s.signals.Compute(history))
}

func (s *Server) handleStockAnalyze(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	result, err := s.app.AnalysisService.AnalyzeStock(r.Context(), ticker)
	if err != nil {
		s.writeLookupError(w, ticker, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// parseMonths reads the optional months query parameter. Absent means 0 (service default).
func parseMonths(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("months")
	if raw == "" {
		return 0, true
	}
	months, err := strconv.Atoi(raw)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "months must be an integer")
		return 0, false
	}
	if months < 1 || months > MaxHistoryMonths {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("months must be between 1 and %d", MaxHistoryMonths))
		return 0, false
	}
	return months, true
}

// writeLookupError maps an unknown ticker to 404 and anything else to 500.
func (s *Server) writeLookupError(w http.ResponseWriter, ticker string, err error) {
	if errors.Is(err, market.ErrStockNotFound) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Stock %s not found", market.NormalizeTicker(ticker)))
		return
	}
	s.logger.Error().Err(err).Str("ticker", ticker).Msg("Stock request failed")
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}
