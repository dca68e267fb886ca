package market

import (
	"strings"

	"github.com/bobmcallan/realticker/internal/models"
)

// catalog is the fixed universe of twenty stocks. It is never mutated after init.
var catalog = []models.Stock{
	{Ticker: "NVDA", CompanyName: "NVIDIA Corporation", BasePrice: 875.40, Growth6M: 156.78, Volatility: 12.5, BaseVolume: 95000000, MarketCap: 2158000000000},
	{Ticker: "META", CompanyName: "Meta Platforms Inc", BasePrice: 492.50, Growth6M: 89.45, Volatility: 15.2, BaseVolume: 42000000, MarketCap: 1245000000000},
	{Ticker: "TSLA", CompanyName: "Tesla, Inc.", BasePrice: 248.50, Growth6M: 67.23, Volatility: 22.8, BaseVolume: 125000000, MarketCap: 789000000000},
	{Ticker: "AMZN", CompanyName: "Amazon.com Inc", BasePrice: 178.30, Growth6M: 52.15, Volatility: 10.5, BaseVolume: 68000000, MarketCap: 1856000000000},
	{Ticker: "GOOGL", CompanyName: "Alphabet Inc Class A", BasePrice: 142.80, Growth6M: 45.67, Volatility: 8.9, BaseVolume: 35000000, MarketCap: 1789000000000},
	{Ticker: "MSFT", CompanyName: "Microsoft Corporation", BasePrice: 412.30, Growth6M: 38.92, Volatility: 7.2, BaseVolume: 45000000, MarketCap: 3078000000000},
	{Ticker: "AAPL", CompanyName: "Apple Inc.", BasePrice: 185.40, Growth6M: 25.50, Volatility: 8.2, BaseVolume: 78000000, MarketCap: 2891000000000},
	{Ticker: "AMD", CompanyName: "Advanced Micro Devices", BasePrice: 165.20, Growth6M: 78.34, Volatility: 18.5, BaseVolume: 82000000, MarketCap: 267000000000},
	{Ticker: "NFLX", CompanyName: "Netflix Inc", BasePrice: 598.75, Growth6M: 42.18, Volatility: 16.3, BaseVolume: 38000000, MarketCap: 259000000000},
	{Ticker: "V", CompanyName: "Visa Inc", BasePrice: 272.60, Growth6M: 18.45, Volatility: 6.8, BaseVolume: 28000000, MarketCap: 567000000000},
	{Ticker: "MA", CompanyName: "Mastercard Inc", BasePrice: 458.90, Growth6M: 22.33, Volatility: 7.1, BaseVolume: 25000000, MarketCap: 445000000000},
	{Ticker: "JPM", CompanyName: "JPMorgan Chase & Co", BasePrice: 198.45, Growth6M: 15.67, Volatility: 9.2, BaseVolume: 32000000, MarketCap: 589000000000},
	{Ticker: "WMT", CompanyName: "Walmart Inc", BasePrice: 168.20, Growth6M: 12.89, Volatility: 5.4, BaseVolume: 48000000, MarketCap: 478000000000},
	{Ticker: "JNJ", CompanyName: "Johnson & Johnson", BasePrice: 156.78, Growth6M: 8.23, Volatility: 4.8, BaseVolume: 22000000, MarketCap: 389000000000},
	{Ticker: "PG", CompanyName: "Procter & Gamble Co", BasePrice: 164.55, Growth6M: 10.45, Volatility: 5.1, BaseVolume: 26000000, MarketCap: 398000000000},
	{Ticker: "XOM", CompanyName: "Exxon Mobil Corporation", BasePrice: 112.34, Growth6M: -5.67, Volatility: 14.2, BaseVolume: 55000000, MarketCap: 456000000000},
	{Ticker: "CVX", CompanyName: "Chevron Corporation", BasePrice: 156.89, Growth6M: -3.24, Volatility: 12.8, BaseVolume: 42000000, MarketCap: 289000000000},
	{Ticker: "KO", CompanyName: "The Coca-Cola Company", BasePrice: 62.45, Growth6M: 6.78, Volatility: 4.2, BaseVolume: 52000000, MarketCap: 268000000000},
	{Ticker: "BAC", CompanyName: "Bank of America Corp", BasePrice: 38.92, Growth6M: 14.56, Volatility: 11.3, BaseVolume: 98000000, MarketCap: 312000000000},
	{Ticker: "HD", CompanyName: "The Home Depot Inc", BasePrice: 382.75, Growth6M: 19.88, Volatility: 8.7, BaseVolume: 36000000, MarketCap: 389000000000},
}

var catalogIndex = buildIndex(catalog)

func buildIndex(stocks []models.Stock) map[string]int {
	idx := make(map[string]int, len(stocks))
	for i, s := range stocks {
		idx[s.Ticker] = i
	}
	return idx
}

// NormalizeTicker upper-cases and trims a ticker for catalog lookup.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Lookup returns a copy of the catalog entry for ticker (case-insensitive).
func Lookup(ticker string) (models.Stock, bool) {
	i, ok := catalogIndex[NormalizeTicker(ticker)]
	if !ok {
		return models.Stock{}, false
	}
	return catalog[i], true
}

// Stocks returns a copy of the full catalog in declaration order.
func Stocks() []models.Stock {
	out := make([]models.Stock, len(catalog))
	copy(out, catalog)
	return out
}
