package signals

import (
	"github.com/bobmcallan/realticker/internal/common"
	"github.com/bobmcallan/realticker/internal/models"
)

// Computer derives the indicator snapshot for a history series
type Computer struct{}

// NewComputer creates a new indicator computer
func NewComputer() *Computer {
	return &Computer{}
}

// Compute returns indicators as of the last point of history. Nil for an empty series.
func (c *Computer) Compute(history *models.StockHistory) *models.Indicators {
	if history == nil || len(history.HistoricalData) == 0 {
		return nil
	}
	points := history.HistoricalData
	last := points[len(points)-1]

	sma50 := SMA(points, 50)
	rsi := RSI(points, 14)
	volRatio := VolumeRatio(points, 20)
	support, resistance := DetectSupportResistance(points, 60)

	return &models.Indicators{
		Ticker:        history.Ticker,
		AsOf:          last.Date,
		LastClose:     last.Close,
		SMA20:         common.Round2(SMA(points, 20)),
		SMA50:         common.Round2(sma50),
		EMA12:         common.Round2(EMA(points, 12)),
		RSI14:         common.Round2(rsi),
		RSIState:      ClassifyRSI(rsi),
		ATR14:         common.Round2(ATR(points, 14)),
		AvgVolume20:   AverageVolume(points, 20),
		VolumeRatio:   common.Round2(volRatio),
		VolumeState:   ClassifyVolume(volRatio),
		Support:       support,
		Resistance:    resistance,
		Crossover:     DetectCrossover(points, 20, 50),
		DistanceSMA50: common.Round2(DistanceToSMA(last.Close, sma50)),
	}
}
