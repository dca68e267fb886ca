package models

// Trend classifications
const (
	TrendUpward   = "Upward"
	TrendDownward = "Downward"
	TrendSideways = "Sideways"
)

// Risk levels
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// AnalysisDisclaimer is attached to every analysis response.
const AnalysisDisclaimer = "This is AI-generated analysis and not financial advice."

// PriceStatistics summarises a generated history for an analyst.
// PriceChange and Volatility are the stored catalog parameters, not values measured from the series.
type PriceStatistics struct {
	Ticker      string  `json:"ticker"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	StartPrice  float64 `json:"start_price"`
	EndPrice    float64 `json:"end_price"`
	MaxPrice    float64 `json:"max_price"`
	MinPrice    float64 `json:"min_price"`
	AvgPrice    float64 `json:"avg_price"`
	PriceChange float64 `json:"price_change"`
	Volatility  float64 `json:"volatility"`
}

// Analysis holds the qualitative assessment of a stock
type Analysis struct {
	Trend           string  `json:"trend"`
	RiskLevel       string  `json:"risk_level"`
	SuggestedAction string  `json:"suggested_action"`
	Reasoning       string  `json:"reasoning"`
	PriceChange6M   float64 `json:"price_change_6m"`
	Volatility      float64 `json:"volatility"`
	Source          string  `json:"-"`
}

// StockAnalysis is the analyze endpoint response
type StockAnalysis struct {
	Ticker     string    `json:"ticker"`
	Analysis   *Analysis `json:"analysis"`
	Disclaimer string    `json:"disclaimer"`
	Source     string    `json:"source"` // analyst that produced the result
}
