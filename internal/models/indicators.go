package models

// Crossover states reported by the SMA20/SMA50 crossover check
const (
	CrossoverGolden = "golden_cross"
	CrossoverDeath  = "death_cross"
	CrossoverNone   = "none"
)

// Indicators holds technical indicators computed from a generated history series.
// Values are rounded to 2 decimals; a zero value means the series was too short.
type Indicators struct {
	Ticker        string  `json:"ticker"`
	AsOf          string  `json:"as_of"` // date of the last point
	LastClose     float64 `json:"last_close"`
	SMA20         float64 `json:"sma_20"`
	SMA50         float64 `json:"sma_50"`
	EMA12         float64 `json:"ema_12"`
	RSI14         float64 `json:"rsi_14"`
	RSIState      string  `json:"rsi_state"` // overbought, oversold, neutral
	ATR14         float64 `json:"atr_14"`
	AvgVolume20   int64   `json:"avg_volume_20"`
	VolumeRatio   float64 `json:"volume_ratio"`
	VolumeState   string  `json:"volume_state"` // spike, low, normal
	Support       float64 `json:"support"`
	Resistance    float64 `json:"resistance"`
	Crossover     string  `json:"sma_crossover"`
	DistanceSMA50 float64 `json:"distance_to_sma_50_pct"`
}
