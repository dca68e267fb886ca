package analysis

import (
	"fmt"

	"github.com/bobmcallan/realticker/internal/common"
	"github.com/bobmcallan/realticker/internal/models"
)

// ComputeStatistics summarises a close series for an analyst.
// Price change and volatility come from the catalog entry that seeded the series.
func ComputeStatistics(stock models.Stock, points []models.HistoryPoint) (*models.PriceStatistics, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no history for %s", stock.Ticker)
	}

	first, last := points[0], points[len(points)-1]
	maxPrice, minPrice, sum := first.Close, first.Close, 0.0
	for _, p := range points {
		maxPrice = max(maxPrice, p.Close)
		minPrice = min(minPrice, p.Close)
		sum += p.Close
	}

	return &models.PriceStatistics{
		Ticker:      stock.Ticker,
		StartDate:   first.Date,
		EndDate:     last.Date,
		StartPrice:  first.Close,
		EndPrice:    last.Close,
		MaxPrice:    maxPrice,
		MinPrice:    minPrice,
		AvgPrice:    common.Round2(sum / float64(len(points))),
		PriceChange: stock.Growth6M,
		Volatility:  stock.Volatility,
	}, nil
}
