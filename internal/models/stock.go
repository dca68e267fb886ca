// Package models defines data structures for RealTicker
package models

// Stock is a static catalog entry. Prices are in USD.
type Stock struct {
	Ticker      string  `json:"ticker"`
	CompanyName string  `json:"company_name"`
	BasePrice   float64 `json:"base_price"`
	Growth6M    float64 `json:"growth_6m"`  // stored 6-month change, percent
	Volatility  float64 `json:"volatility"` // noise scale, percent
	BaseVolume  int64   `json:"base_volume"`
	MarketCap   int64   `json:"market_cap"`
}

// Quote is a freshly generated "current" snapshot for a catalog stock
type Quote struct {
	Ticker       string  `json:"ticker"`
	CompanyName  string  `json:"company_name"`
	CurrentPrice float64 `json:"current_price"`
	DailyChange  float64 `json:"daily_change"` // percent
	Volume       int64   `json:"volume"`
	MarketCap    int64   `json:"market_cap"`
	Growth6M     float64 `json:"growth_6m"`
}

// HistoryPoint represents a single day's generated price data
type HistoryPoint struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// TopStocks is the ranked quote list returned by the top10 endpoint
type TopStocks struct {
	Stocks   []Quote `json:"stocks"`
	SortedBy string  `json:"sorted_by"`
}

// StockHistory is a generated price series for one ticker
type StockHistory struct {
	Ticker         string         `json:"ticker"`
	CompanyName    string         `json:"company_name"`
	HistoricalData []HistoryPoint `json:"historical_data"`
}
