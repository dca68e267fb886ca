// Package market provides the synthetic market data service
package market

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/realticker/internal/interfaces"
	"github.com/bobmcallan/realticker/internal/models"
)

// Sort keys accepted by GetTopStocks
const (
	SortByGrowth    = "growth"
	SortByVolume    = "volume"
	SortByMarketCap = "market_cap"
)

// TopStocksLimit is the number of quotes returned by GetTopStocks
const TopStocksLimit = 10

// ErrStockNotFound is returned for tickers outside the catalog
var ErrStockNotFound = errors.New("stock not found")

// Service implements MarketService over the static catalog
type Service struct {
	historyMonths int
	logger        arbor.ILogger
	newRand       func() *rand.Rand // one source per call; generators are not shared
	now           func() time.Time
}

// Option configures the service
type Option func(*Service)

// WithRandSource sets the factory used to seed each request's generator
func WithRandSource(newRand func() *rand.Rand) Option {
	return func(s *Service) {
		s.newRand = newRand
	}
}

// WithClock sets the clock used to date history series
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new market service.
// historyMonths <= 0 falls back to DefaultHistoryMonths.
func NewService(historyMonths int, logger arbor.ILogger, opts ...Option) *Service {
	if historyMonths <= 0 {
		historyMonths = DefaultHistoryMonths
	}
	s := &Service{
		historyMonths: historyMonths,
		logger:        logger,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeededRandSource returns a factory whose generators all start from the same seed.
func SeededRandSource(seed uint64) func() *rand.Rand {
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func (s *Service) generator() *Generator {
	return NewGenerator(s.newRand(), s.now)
}

// ListStocks returns every catalog entry in catalog order
func (s *Service) ListStocks() []models.Stock {
	return Stocks()
}

// GetQuote generates a fresh quote for one ticker
func (s *Service) GetQuote(ticker string) (*models.Quote, error) {
	stock, ok := Lookup(ticker)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, NormalizeTicker(ticker))
	}
	q := s.generator().Quote(stock)
	return &q, nil
}

// NormalizeSortKey maps a requested sort key onto one GetTopStocks understands.
// Anything unrecognised ranks by growth.
func NormalizeSortKey(sortBy string) string {
	switch sortBy {
	case SortByVolume, SortByMarketCap:
		return sortBy
	default:
		return SortByGrowth
	}
}

// GetTopStocks generates quotes for the whole catalog and returns the top 10 descending.
// Growth ranks on the stored catalog value, so that ordering is stable across calls.
func (s *Service) GetTopStocks(sortBy string) *models.TopStocks {
	key := NormalizeSortKey(sortBy)
	gen := s.generator()

	quotes := make([]models.Quote, 0, len(catalog))
	for _, stock := range catalog {
		quotes = append(quotes, gen.Quote(stock))
	}

	slices.SortStableFunc(quotes, func(a, b models.Quote) int {
		switch key {
		case SortByVolume:
			return cmp.Compare(b.Volume, a.Volume)
		case SortByMarketCap:
			return cmp.Compare(b.MarketCap, a.MarketCap)
		default:
			return cmp.Compare(b.Growth6M, a.Growth6M)
		}
	})

	s.logger.Debug().Str("sort_by", key).Msg("Generated top stocks")

	return &models.TopStocks{
		Stocks:   quotes[:min(TopStocksLimit, len(quotes))],
		SortedBy: key,
	}
}

// GetHistory generates a daily OHLCV series for ticker
func (s *Service) GetHistory(ticker string, months int) (*models.StockHistory, error) {
	stock, ok := Lookup(ticker)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, NormalizeTicker(ticker))
	}
	if months <= 0 {
		months = s.historyMonths
	}

	s.logger.Debug().Str("ticker", stock.Ticker).Int("months", months).Msg("Generating historical data")

	return &models.StockHistory{
		Ticker:         stock.Ticker,
		CompanyName:    stock.CompanyName,
		HistoricalData: s.generator().History(stock, months),
	}, nil
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
