package app

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/realticker/internal/common"
	"github.com/bobmcallan/realticker/internal/models"
	"github.com/bobmcallan/realticker/internal/signals"
)

// recentSessions is how many trailing bars formatHistory tabulates
const recentSessions = 10

// formatTopStocks renders the ranking as a markdown table
func formatTopStocks(top *models.TopStocks) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Top %d Stocks by %s\n\n", len(top.Stocks), top.SortedBy))
	sb.WriteString("| # | Ticker | Company | Price | Change | Volume | Market Cap | 6M Growth |\n")
	sb.WriteString("|---|--------|---------|-------|--------|--------|------------|-----------|\n")
	for i, q := range top.Stocks {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | $%.2f | %s | %s | %s | %s |\n",
			i+1, q.Ticker, q.CompanyName, q.CurrentPrice,
			common.FormatSignedPct(q.DailyChange),
			common.FormatVolume(q.Volume),
			common.FormatMarketCap(q.MarketCap),
			common.FormatSignedPct(q.Growth6M),
		))
	}
	sb.WriteString("\n*Simulated data for demonstration only.*\n")

	return sb.String()
}

// formatHistory renders a price summary and the trailing sessions of a history
func formatHistory(history *models.StockHistory, recent int) string {
	var sb strings.Builder
	points := history.HistoricalData

	sb.WriteString(fmt.Sprintf("# %s - %s\n\n", history.Ticker, history.CompanyName))
	if len(points) == 0 {
		sb.WriteString("No history available.\n")
		return sb.String()
	}

	first, last := points[0], points[len(points)-1]
	high, low := first.High, first.Low
	for _, p := range points {
		high = max(high, p.High)
		low = min(low, p.Low)
	}
	change := (last.Close - first.Close) / first.Close * 100

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Period | %s to %s (%d days) |\n", first.Date, last.Date, len(points)))
	sb.WriteString(fmt.Sprintf("| First Close | $%.2f |\n", first.Close))
	sb.WriteString(fmt.Sprintf("| Last Close | $%.2f |\n", last.Close))
	sb.WriteString(fmt.Sprintf("| Change | %s |\n", common.FormatSignedPct(change)))
	sb.WriteString(fmt.Sprintf("| Period High | $%.2f |\n", high))
	sb.WriteString(fmt.Sprintf("| Period Low | $%.2f |\n", low))
	sb.WriteString("\n")

	if ind := signals.NewComputer().Compute(history); ind != nil {
		sb.WriteString("## Indicators\n\n")
		sb.WriteString("| Indicator | Value |\n")
		sb.WriteString("|-----------|-------|\n")
		sb.WriteString(fmt.Sprintf("| SMA 20 / 50 | $%.2f / $%.2f |\n", ind.SMA20, ind.SMA50))
		sb.WriteString(fmt.Sprintf("| RSI 14 | %.2f (%s) |\n", ind.RSI14, ind.RSIState))
		sb.WriteString(fmt.Sprintf("| ATR 14 | $%.2f |\n", ind.ATR14))
		sb.WriteString(fmt.Sprintf("| Support / Resistance | $%.2f / $%.2f |\n", ind.Support, ind.Resistance))
		sb.WriteString(fmt.Sprintf("| Volume vs 20D Avg | %.2fx (%s) |\n", ind.VolumeRatio, ind.VolumeState))
		sb.WriteString(fmt.Sprintf("| SMA Crossover | %s |\n", ind.Crossover))
		sb.WriteString("\n")
	}

	start := max(0, len(points)-recent)
	sb.WriteString(fmt.Sprintf("## Last %d Sessions\n\n", len(points)-start))
	sb.WriteString("| Date | Open | High | Low | Close | Volume |\n")
	sb.WriteString("|------|------|------|-----|-------|--------|\n")
	for _, p := range points[start:] {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %.2f | %.2f | %s |\n",
			p.Date, p.Open, p.High, p.Low, p.Close, common.FormatVolume(p.Volume)))
	}

	return sb.String()
}

// formatAnalysis renders an analysis result
func formatAnalysis(result *models.StockAnalysis) string {
	var sb strings.Builder
	a := result.Analysis

	sb.WriteString(fmt.Sprintf("# %s Analysis\n\n", result.Ticker))
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Trend | %s |\n", a.Trend))
	sb.WriteString(fmt.Sprintf("| Risk Level | %s |\n", a.RiskLevel))
	sb.WriteString(fmt.Sprintf("| 6M Price Change | %s |\n", common.FormatSignedPct(a.PriceChange6M)))
	sb.WriteString(fmt.Sprintf("| Volatility | %.2f%% |\n", a.Volatility))
	sb.WriteString(fmt.Sprintf("| Source | %s |\n", result.Source))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("**Suggested Action:** %s\n\n", a.SuggestedAction))
	sb.WriteString(fmt.Sprintf("**Reasoning:** %s\n\n", a.Reasoning))
	sb.WriteString(fmt.Sprintf("*%s*\n", result.Disclaimer))

	return sb.String()
}
