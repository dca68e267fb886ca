package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/realticker/internal/app"
	"github.com/bobmcallan/realticker/internal/common"
	"github.com/bobmcallan/realticker/internal/models"
)

func newTestServer(t *testing.T, mutate func(*common.Config)) *Server {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Analyst.Provider = common.ProviderNone
	if mutate != nil {
		mutate(cfg)
	}
	a, err := app.NewAppWithConfig(context.Background(), cfg, common.NewSilentLogger())
	require.NoError(t, err)
	return NewServer(a)
}

func do(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestRoot(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"RealTicker API is running with mock data"}`, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/version")
	require.Equal(t, http.StatusOK, rec.Code)
	var version map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &version))
	assert.Equal(t, "rules", version["analyst"])
	assert.NotEmpty(t, version["version"])
}

func TestStockList(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/stocks")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Stocks []models.Stock `json:"stocks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Stocks, 20)
}

func TestTopStocks(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		query    string
		sortedBy string
	}{
		{"", "growth"},
		{"?sort_by=growth", "growth"},
		{"?sort_by=volume", "volume"},
		{"?sort_by=market_cap", "market_cap"},
		{"?sort_by=bogus", "growth"},
	}
	for _, tt := range tests {
		t.Run(tt.sortedBy+tt.query, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/api/stocks/top10"+tt.query)
			require.Equal(t, http.StatusOK, rec.Code)

			var top models.TopStocks
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
			assert.Equal(t, tt.sortedBy, top.SortedBy)
			require.Len(t, top.Stocks, 10)

			seen := make(map[string]bool)
			for _, q := range top.Stocks {
				assert.False(t, seen[q.Ticker], "duplicate %s", q.Ticker)
				seen[q.Ticker] = true
			}
		})
	}

	rec := do(t, srv, http.MethodGet, "/api/stocks/top10")
	var top models.TopStocks
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
	assert.Equal(t, []string{"NVDA", "META", "AMD", "TSLA"},
		[]string{top.Stocks[0].Ticker, top.Stocks[1].Ticker, top.Stocks[2].Ticker, top.Stocks[3].Ticker})
}

func TestStockHistory(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/stocks/aapl/history")
	require.Equal(t, http.StatusOK, rec.Code)

	var h models.StockHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "AAPL", h.Ticker)
	assert.Equal(t, "Apple Inc.", h.CompanyName)
	assert.Len(t, h.HistoricalData, 180)

	rec = do(t, srv, http.MethodGet, "/api/stocks/AAPL/history?months=2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Len(t, h.HistoricalData, 60)
}

func TestRepeatedRequestsKeepSchema(t *testing.T) {
	srv := newTestServer(t, nil)

	keysOf := func(body []byte) []string {
		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &m))
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}

	for _, path := range []string{"/api/stocks/top10", "/api/stocks/AMD/history", "/api/stocks/AMD/quote"} {
		first := do(t, srv, http.MethodGet, path)
		second := do(t, srv, http.MethodGet, path)
		require.Equal(t, http.StatusOK, first.Code, path)
		require.Equal(t, http.StatusOK, second.Code, path)
		assert.Equal(t, keysOf(first.Body.Bytes()), keysOf(second.Body.Bytes()), path)
	}

	var h1, h2 models.StockHistory
	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/api/stocks/AMD/history").Body.Bytes(), &h1))
	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/api/stocks/AMD/history").Body.Bytes(), &h2))
	require.Len(t, h1.HistoricalData, 180)
	require.Len(t, h2.HistoricalData, 180)
	assert.NotEqual(t, h1.HistoricalData, h2.HistoricalData, "fresh histories should differ")

	var t1, t2 models.TopStocks
	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/api/stocks/top10").Body.Bytes(), &t1))
	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/api/stocks/top10").Body.Bytes(), &t2))
	assert.Len(t, t1.Stocks, 10)
	assert.Len(t, t2.Stocks, 10)
}

func TestErrorBody_OnlyErrorField(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/stocks/zzz/quote")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Stock ZZZ not found"}`, rec.Body.String())
}

func TestStockHistory_InvalidMonths(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, q := range []string{"abc", "0", "25", "-3"} {
		rec := do(t, srv, http.MethodGet, "/api/stocks/AAPL/history?months="+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Contains(t, decodeError(t, rec), "months", q)
	}
}

func TestStockNotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/stocks/zzz/history"},
		{http.MethodPost, "/api/stocks/zzz/analyze"},
		{http.MethodGet, "/api/stocks/zzz/quote"},
		{http.MethodGet, "/api/stocks/zzz/chart.png"},
		{http.MethodGet, "/api/stocks/zzz/indicators"},
	}
	for _, c := range cases {
		rec := do(t, srv, c.method, c.path)
		assert.Equal(t, http.StatusNotFound, rec.Code, c.path)
		assert.Equal(t, "Stock ZZZ not found", decodeError(t, rec), c.path)
	}
}

func TestStockRoutes_UnknownPath(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/api/stocks/AAPL", "/api/stocks/AAPL/", "/api/stocks/AAPL/news"} {
		rec := do(t, srv, http.MethodGet, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/stocks/NVDA/analyze")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))

	rec = do(t, srv, http.MethodPost, "/api/stocks/top10")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
}

func TestStockQuote(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/stocks/msft/quote")
	require.Equal(t, http.StatusOK, rec.Code)

	var q models.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Equal(t, "MSFT", q.Ticker)
	assert.InDelta(t, 0, q.DailyChange, 3)
}

func TestStockChart(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/stocks/NVDA/chart.png?months=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
}

func TestStockIndicators(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/stocks/tsla/indicators")
	require.Equal(t, http.StatusOK, rec.Code)

	var ind models.Indicators
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ind))
	assert.Equal(t, "TSLA", ind.Ticker)
	assert.Greater(t, ind.SMA20, 0.0)
	assert.Greater(t, ind.SMA50, 0.0)
	assert.Contains(t, []string{"overbought", "oversold", "neutral"}, ind.RSIState)
	assert.LessOrEqual(t, ind.Support, ind.Resistance)

	rec = do(t, srv, http.MethodGet, "/api/stocks/tsla/indicators?months=99")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_RulesOnly(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/api/stocks/nvda/analyze")
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.StockAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "NVDA", result.Ticker)
	assert.Equal(t, "rules", result.Source)
	assert.Equal(t, models.AnalysisDisclaimer, result.Disclaimer)
	require.NotNil(t, result.Analysis)
	assert.Equal(t, models.TrendUpward, result.Analysis.Trend)
	assert.Equal(t, models.RiskMedium, result.Analysis.RiskLevel)
	assert.Equal(t, 156.78, result.Analysis.PriceChange6M)
}

func TestAnalyze_RemoteAnalyst(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"generated_text":"Trend: Downward\nRisk Level: High\nSuggested Action: Reduce exposure\nReasoning: Momentum is fading."}]`))
	}))
	defer upstream.Close()

	srv := newTestServer(t, func(cfg *common.Config) {
		cfg.Analyst.Provider = common.ProviderHuggingFace
		cfg.Clients.HuggingFace.APIKey = "hf_test"
		cfg.Clients.HuggingFace.APIURL = upstream.URL
	})

	rec := do(t, srv, http.MethodPost, "/api/stocks/NVDA/analyze")
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.StockAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "huggingface", result.Source)
	assert.Equal(t, models.TrendDownward, result.Analysis.Trend)
	assert.Equal(t, models.RiskHigh, result.Analysis.RiskLevel)
	assert.Equal(t, "Reduce exposure", result.Analysis.SuggestedAction)
	assert.Equal(t, 156.78, result.Analysis.PriceChange6M)
}

func TestAnalyze_UpstreamFailureFallsBack(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Model is currently loading"}`, http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	srv := newTestServer(t, func(cfg *common.Config) {
		cfg.Analyst.Provider = common.ProviderHuggingFace
		cfg.Clients.HuggingFace.APIKey = "hf_test"
		cfg.Clients.HuggingFace.APIURL = upstream.URL
	})

	rec := do(t, srv, http.MethodPost, "/api/stocks/NVDA/analyze")
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.StockAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "rules", result.Source)
	assert.Equal(t, models.TrendUpward, result.Analysis.Trend)
}

func TestMCPEndpoint_Initialize(t *testing.T) {
	srv := newTestServer(t, nil)

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "realticker")
}

func TestNewServer_Addr(t *testing.T) {
	srv := newTestServer(t, func(cfg *common.Config) {
		cfg.Server.Host = "127.0.0.1"
		cfg.Server.Port = 9001
	})
	assert.Equal(t, "127.0.0.1:9001", srv.Addr())
}
