package market

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/bobmcallan/realticker/internal/common"
	"github.com/bobmcallan/realticker/internal/models"
)

const (
	// DaysPerMonth converts a month count into a history length
	DaysPerMonth = 30
	// DefaultHistoryMonths gives the 180-day series
	DefaultHistoryMonths = 6

	maxDailyChangePct = 3.0
	minHistoryVolume  = 10_000_000
	maxHistoryVolume  = 150_000_000
)

// Generator produces synthetic quotes and price histories.
// A Generator owns its random source and must not be shared between goroutines.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator over rng. now supplies "today" for history dates.
func NewGenerator(rng *rand.Rand, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now}
}

// uniform draws from [lo, hi)
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// Quote generates a current snapshot with up to ±3% intraday movement and ±20% volume noise.
func (g *Generator) Quote(s models.Stock) models.Quote {
	change := g.uniform(-maxDailyChangePct, maxDailyChangePct)
	price := s.BasePrice * (1 + change/100)
	volume := int64(math.Round(float64(s.BaseVolume) * g.uniform(0.8, 1.2)))

	return models.Quote{
		Ticker:       s.Ticker,
		CompanyName:  s.CompanyName,
		CurrentPrice: common.Round2(price),
		DailyChange:  common.Round2(change),
		Volume:       volume,
		MarketCap:    s.MarketCap,
		Growth6M:     s.Growth6M,
	}
}

// History generates months*30 daily bars, oldest first, the last one dated today.
// Closes follow a linear path from the price implied by Growth6M up to BasePrice,
// with gaussian noise scaled by Volatility.
func (g *Generator) History(s models.Stock, months int) []models.HistoryPoint {
	if months <= 0 {
		months = DefaultHistoryMonths
	}
	days := months * DaysPerMonth

	endPrice := s.BasePrice
	startPrice := endPrice / (1 + s.Growth6M/100)

	now := g.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	points := make([]models.HistoryPoint, days)
	for i := 0; i < days; i++ {
		progress := float64(i) / float64(days)
		trendPrice := startPrice + (endPrice-startPrice)*progress

		dailyVolatility := g.rng.NormFloat64() * (s.Volatility / 10)
		price := trendPrice * (1 + dailyVolatility/100)

		open := price * g.uniform(0.98, 1.02)
		high := math.Max(open, price) * g.uniform(1.0, 1.02)
		low := math.Min(open, price) * g.uniform(0.98, 1.0)

		o := common.Round2(open)
		c := common.Round2(price)
		// Rounding can nudge high below open/close by a cent; keep the bar consistent.
		h := math.Max(common.Round2(high), math.Max(o, c))
		l := math.Min(common.Round2(low), math.Min(o, c))

		points[i] = models.HistoryPoint{
			Date:   today.AddDate(0, 0, i-(days-1)).Format("2006-01-02"),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: int64(minHistoryVolume + g.rng.IntN(maxHistoryVolume-minHistoryVolume+1)),
		}
	}

	return points
}
