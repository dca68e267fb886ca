package analysis

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/realticker/internal/interfaces"
	"github.com/bobmcallan/realticker/internal/models"
	"github.com/bobmcallan/realticker/internal/services/market"
)

// Service implements AnalysisService
type Service struct {
	market  interfaces.MarketService
	analyst interfaces.Analyst
	logger  arbor.ILogger
}

// NewService creates a new analysis service
func NewService(marketService interfaces.MarketService, analyst interfaces.Analyst, logger arbor.ILogger) *Service {
	return &Service{
		market:  marketService,
		analyst: analyst,
		logger:  logger,
	}
}

// AnalyzeStock generates six months of history, summarises it and runs the analyst.
// Unknown tickers return market.ErrStockNotFound.
func (s *Service) AnalyzeStock(ctx context.Context, ticker string) (*models.StockAnalysis, error) {
	stock, ok := market.Lookup(ticker)
	if !ok {
		return nil, fmt.Errorf("%w: %s", market.ErrStockNotFound, market.NormalizeTicker(ticker))
	}

	s.logger.Info().Str("ticker", stock.Ticker).Msg("Generating analysis")

	history, err := s.market.GetHistory(stock.Ticker, market.DefaultHistoryMonths)
	if err != nil {
		return nil, err
	}

	stats, err := ComputeStatistics(stock, history.HistoricalData)
	if err != nil {
		return nil, err
	}

	result, err := s.analyst.Analyze(ctx, stats)
	if err != nil {
		return nil, fmt.Errorf("analysis failed for %s: %w", stock.Ticker, err)
	}

	return &models.StockAnalysis{
		Ticker:     stock.Ticker,
		Analysis:   result,
		Disclaimer: models.AnalysisDisclaimer,
		Source:     result.Source,
	}, nil
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
