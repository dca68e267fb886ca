// Package interfaces defines service contracts for RealTicker
package interfaces

import (
	"context"

	"github.com/bobmcallan/realticker/internal/models"
)

// MarketService serves synthetic market data from the static catalog
type MarketService interface {
	// ListStocks returns every catalog entry in catalog order
	ListStocks() []models.Stock

	// GetQuote generates a fresh quote for one ticker (case-insensitive)
	GetQuote(ticker string) (*models.Quote, error)

	// GetTopStocks generates quotes for the whole catalog and returns the top 10 by sortBy.
	// Unknown sortBy values rank by growth.
	GetTopStocks(sortBy string) *models.TopStocks

	// GetHistory generates a daily OHLCV series covering months*30 days ending today.
	// months <= 0 uses the configured default.
	GetHistory(ticker string, months int) (*models.StockHistory, error)
}

// AnalysisService produces a stock assessment for a ticker
type AnalysisService interface {
	// AnalyzeStock generates history, derives statistics and runs the analyst chain
	AnalyzeStock(ctx context.Context, ticker string) (*models.StockAnalysis, error)
}

// Analyst classifies price statistics into a trend/risk/action assessment
type Analyst interface {
	Analyze(ctx context.Context, stats *models.PriceStatistics) (*models.Analysis, error)
}
