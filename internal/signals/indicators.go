// Package signals provides technical indicator calculations over generated price series.
// All functions take points oldest first, matching models.StockHistory.
package signals

import (
	"math"
	"sort"

	"github.com/bobmcallan/realticker/internal/models"
)

// tail returns the last n points, or nil when the series is shorter than n
func tail(points []models.HistoryPoint, n int) []models.HistoryPoint {
	if n <= 0 || len(points) < n {
		return nil
	}
	return points[len(points)-n:]
}

// SMA calculates Simple Moving Average of closes over the last period points
func SMA(points []models.HistoryPoint, period int) float64 {
	window := tail(points, period)
	if window == nil {
		return 0
	}

	sum := 0.0
	for _, p := range window {
		sum += p.Close
	}
	return sum / float64(period)
}

// EMA calculates Exponential Moving Average seeded with the SMA of the first period points
func EMA(points []models.HistoryPoint, period int) float64 {
	if period <= 0 || len(points) < period {
		return 0
	}

	multiplier := 2.0 / float64(period+1)
	ema := SMA(points[:period], period)
	for _, p := range points[period:] {
		ema = (p.Close-ema)*multiplier + ema
	}
	return ema
}

// RSI calculates Relative Strength Index over the last period changes
func RSI(points []models.HistoryPoint, period int) float64 {
	window := tail(points, period+1)
	if window == nil {
		return 50 // Neutral default
	}

	var gains, losses float64
	for i := 1; i < len(window); i++ {
		change := window[i].Close - window[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// ATR calculates Average True Range over the last period points
func ATR(points []models.HistoryPoint, period int) float64 {
	window := tail(points, period+1)
	if window == nil {
		return 0
	}

	trSum := 0.0
	for i := 1; i < len(window); i++ {
		high := window[i].High
		low := window[i].Low
		prevClose := window[i-1].Close

		tr1 := high - low
		tr2 := math.Abs(high - prevClose)
		tr3 := math.Abs(low - prevClose)

		trSum += math.Max(tr1, math.Max(tr2, tr3))
	}

	return trSum / float64(period)
}

// AverageVolume calculates average volume over the last period points
func AverageVolume(points []models.HistoryPoint, period int) int64 {
	window := tail(points, period)
	if window == nil {
		return 0
	}

	var sum int64
	for _, p := range window {
		sum += p.Volume
	}
	return sum / int64(period)
}

// VolumeRatio calculates the latest volume as a ratio of the period average
func VolumeRatio(points []models.HistoryPoint, period int) float64 {
	if len(points) == 0 {
		return 1.0
	}

	avg := AverageVolume(points, period)
	if avg == 0 {
		return 1.0
	}

	return float64(points[len(points)-1].Volume) / float64(avg)
}

// DetectSupportResistance takes the lower quartile of lows and upper quartile of highs
// over the last lookback points.
func DetectSupportResistance(points []models.HistoryPoint, lookback int) (support, resistance float64) {
	if len(points) == 0 {
		return 0, 0
	}
	if lookback <= 0 || len(points) < lookback {
		lookback = len(points)
	}
	window := points[len(points)-lookback:]

	highs := make([]float64, lookback)
	lows := make([]float64, lookback)
	for i, p := range window {
		highs[i] = p.High
		lows[i] = p.Low
	}

	sort.Float64s(highs)
	sort.Float64s(lows)

	resistance = highs[int(float64(len(highs))*0.75)]
	support = lows[int(float64(len(lows))*0.25)]

	return support, resistance
}

// DetectCrossover reports whether the short SMA crossed the long SMA on the latest point
func DetectCrossover(points []models.HistoryPoint, shortPeriod, longPeriod int) string {
	if len(points) < longPeriod+1 {
		return models.CrossoverNone
	}

	shortSMA := SMA(points, shortPeriod)
	longSMA := SMA(points, longPeriod)

	prev := points[:len(points)-1]
	prevShortSMA := SMA(prev, shortPeriod)
	prevLongSMA := SMA(prev, longPeriod)

	if prevShortSMA <= prevLongSMA && shortSMA > longSMA {
		return models.CrossoverGolden
	}
	if prevShortSMA >= prevLongSMA && shortSMA < longSMA {
		return models.CrossoverDeath
	}
	return models.CrossoverNone
}

// ClassifyRSI classifies RSI value
func ClassifyRSI(rsi float64) string {
	if rsi >= 70 {
		return "overbought"
	}
	if rsi <= 30 {
		return "oversold"
	}
	return "neutral"
}

// ClassifyVolume classifies volume based on ratio
func ClassifyVolume(ratio float64) string {
	if ratio >= 2.0 {
		return "spike"
	}
	if ratio <= 0.5 {
		return "low"
	}
	return "normal"
}

// DistanceToSMA calculates percentage distance from current price to SMA
func DistanceToSMA(currentPrice, sma float64) float64 {
	if sma == 0 {
		return 0
	}
	return ((currentPrice - sma) / sma) * 100
}
