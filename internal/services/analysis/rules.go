// Package analysis turns generated price history into a trend/risk/action assessment
package analysis

import (
	"context"
	"fmt"

	"github.com/bobmcallan/realticker/internal/common"
	"github.com/bobmcallan/realticker/internal/models"
)

// SourceRules identifies results produced by RuleAnalyst
const SourceRules = "rules"

// Suggested actions, evaluated in order by ClassifyAction
const (
	ActionStrongUptrend   = "Long-term investment — strong upward trend, stable volatility."
	ActionPositiveGrowth  = "Long-term investment — positive growth, manageable risk."
	ActionAvoid           = "Avoid — significant downward trend, potential further losses."
	ActionHighVolatility  = "Short-term watch — high volatility, increased risk."
	ActionMonitorForTrend = "Short-term watch — monitor for clearer trend signals."
)

// ClassifyTrend maps a percentage price change onto a trend label
func ClassifyTrend(changePct float64) string {
	switch {
	case changePct > 10:
		return models.TrendUpward
	case changePct < -10:
		return models.TrendDownward
	default:
		return models.TrendSideways
	}
}

// ClassifyRisk maps a volatility percentage onto a risk level
func ClassifyRisk(volatilityPct float64) string {
	switch {
	case volatilityPct < 5:
		return models.RiskLow
	case volatilityPct < 15:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// ClassifyAction picks the suggested action. The first matching rule wins.
func ClassifyAction(changePct, volatilityPct float64) string {
	switch {
	case changePct > 15 && volatilityPct < 10:
		return ActionStrongUptrend
	case changePct > 0 && volatilityPct < 15:
		return ActionPositiveGrowth
	case changePct < -15:
		return ActionAvoid
	case volatilityPct > 20:
		return ActionHighVolatility
	default:
		return ActionMonitorForTrend
	}
}

var trendPhrases = map[string]string{
	models.TrendUpward:   "The stock shows positive momentum. ",
	models.TrendDownward: "The stock shows negative momentum. ",
	models.TrendSideways: "The stock shows mixed signals. ",
}

var riskPhrases = map[string]string{
	models.RiskHigh:   "High volatility indicates increased risk exposure.",
	models.RiskLow:    "Low volatility suggests stable performance.",
	models.RiskMedium: "Moderate volatility suggests balanced risk-reward.",
}

// Reasoning builds the explanation text for a rule-based result
func Reasoning(changePct, volatilityPct float64) string {
	return fmt.Sprintf("Based on %.2f%% price change and %.2f%% volatility over 6 months. ", changePct, volatilityPct) +
		trendPhrases[ClassifyTrend(changePct)] +
		riskPhrases[ClassifyRisk(volatilityPct)]
}

// RuleAnalyst is the deterministic analyst. It never fails.
type RuleAnalyst struct{}

// NewRuleAnalyst creates a rule-based analyst
func NewRuleAnalyst() *RuleAnalyst {
	return &RuleAnalyst{}
}

// Analyze classifies the statistics' price change and volatility
func (r *RuleAnalyst) Analyze(_ context.Context, stats *models.PriceStatistics) (*models.Analysis, error) {
	if stats == nil {
		return nil, fmt.Errorf("price statistics are required")
	}
	change, vol := stats.PriceChange, stats.Volatility
	return &models.Analysis{
		Trend:           ClassifyTrend(change),
		RiskLevel:       ClassifyRisk(vol),
		SuggestedAction: ClassifyAction(change, vol),
		Reasoning:       Reasoning(change, vol),
		PriceChange6M:   common.Round2(change),
		Volatility:      common.Round2(vol),
		Source:          SourceRules,
	}, nil
}
