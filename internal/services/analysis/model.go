package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/realticker/internal/common"
	"github.com/bobmcallan/realticker/internal/interfaces"
	"github.com/bobmcallan/realticker/internal/models"
)

// Defaults applied to labels the model left out
const (
	DefaultModelTrend     = models.TrendSideways
	DefaultModelRisk      = models.RiskMedium
	DefaultModelAction    = "Short-term watch"
	DefaultModelReasoning = "Analysis based on historical data."
)

const (
	labelTrend     = "Trend:"
	labelRisk      = "Risk Level:"
	labelAction    = "Suggested Action:"
	labelReasoning = "Reasoning:"
)

var responseLabels = []string{labelTrend, labelRisk, labelAction, labelReasoning}

var (
	trendValues = []string{models.TrendUpward, models.TrendDownward, models.TrendSideways}
	riskValues  = []string{models.RiskLow, models.RiskMedium, models.RiskHigh}
)

// ErrUnparseableResponse is returned when generated text carries none of the expected labels
var ErrUnparseableResponse = errors.New("model response contained no analysis labels")

const promptTemplate = `Analyze the following 6-month stock price data for %s:

Start Date: %s
End Date: %s
Starting Price: $%.2f
Ending Price: $%.2f
Highest Price: $%.2f
Lowest Price: $%.2f
Average Price: $%.2f
Price Change: %.2f%%
Volatility: %.2f%%

Based on this data, provide:
1. Trend (Upward/Downward/Sideways)
2. Risk Level (Low/Medium/High)
3. Suggested Action (Long-term investment/Short-term watch/Avoid with reason)

Format your response as:
Trend: [your answer]
Risk Level: [your answer]
Suggested Action: [your answer]
Reasoning: [brief explanation]`

// BuildPrompt renders the analysis request sent to a text generator
func BuildPrompt(stats *models.PriceStatistics) string {
	return fmt.Sprintf(promptTemplate,
		stats.Ticker,
		stats.StartDate, stats.EndDate,
		stats.StartPrice, stats.EndPrice,
		stats.MaxPrice, stats.MinPrice, stats.AvgPrice,
		stats.PriceChange, stats.Volatility,
	)
}

// ParseAnalysis extracts labelled fields from generated text.
// Labels may appear in any order; the first occurrence of each wins and missing
// labels take defaults. Text without any label is an error.
func ParseAnalysis(text string) (*models.Analysis, error) {
	found := make(map[string]string, len(responseLabels))

	for _, line := range strings.Split(text, "\n") {
		label, value, ok := matchLabel(line)
		if !ok {
			continue
		}
		if _, seen := found[label]; !seen {
			found[label] = value
		}
	}

	if len(found) == 0 {
		return nil, ErrUnparseableResponse
	}

	return &models.Analysis{
		Trend:           canonical(valueOr(found, labelTrend, DefaultModelTrend), trendValues, DefaultModelTrend),
		RiskLevel:       canonical(valueOr(found, labelRisk, DefaultModelRisk), riskValues, DefaultModelRisk),
		SuggestedAction: valueOr(found, labelAction, DefaultModelAction),
		Reasoning:       valueOr(found, labelReasoning, DefaultModelReasoning),
	}, nil
}

// matchLabel finds the leftmost label on a line and returns the text after it.
// Markdown emphasis around labels and values is dropped.
func matchLabel(line string) (string, string, bool) {
	best, bestIdx := "", -1
	for _, label := range responseLabels {
		if i := strings.Index(line, label); i >= 0 && (bestIdx < 0 || i < bestIdx) {
			best, bestIdx = label, i
		}
	}
	if bestIdx < 0 {
		return "", "", false
	}
	value := strings.Trim(line[bestIdx+len(best):], " \t\r*_")
	if value == "" {
		return "", "", false
	}
	return best, value, true
}

// canonical maps free text onto the allowed value mentioned earliest in it,
// ignoring case. Text naming none of them yields fallback.
func canonical(value string, allowed []string, fallback string) string {
	lower := strings.ToLower(value)
	best, bestIdx := fallback, -1
	for _, a := range allowed {
		if i := strings.Index(lower, strings.ToLower(a)); i >= 0 && (bestIdx < 0 || i < bestIdx) {
			best, bestIdx = a, i
		}
	}
	return best
}

func valueOr(found map[string]string, label, fallback string) string {
	if v, ok := found[label]; ok {
		return v
	}
	return fallback
}

// ModelAnalyst asks a remote text generator for an assessment
type ModelAnalyst struct {
	generator interfaces.TextGenerator
	timeout   time.Duration
	logger    arbor.ILogger
}

// NewModelAnalyst wraps a text generator. timeout bounds each remote call.
func NewModelAnalyst(generator interfaces.TextGenerator, timeout time.Duration, logger arbor.ILogger) *ModelAnalyst {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ModelAnalyst{generator: generator, timeout: timeout, logger: logger}
}

// Analyze sends the prompt and parses the reply. Any failure is returned unmodified
// so a FallbackAnalyst can take over; partial results are never returned.
func (m *ModelAnalyst) Analyze(ctx context.Context, stats *models.PriceStatistics) (*models.Analysis, error) {
	if stats == nil {
		return nil, fmt.Errorf("price statistics are required")
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	text, err := m.generator.GenerateText(ctx, BuildPrompt(stats))
	if err != nil {
		return nil, fmt.Errorf("%s generation failed: %w", m.generator.Name(), err)
	}

	m.logger.Debug().
		Str("provider", m.generator.Name()).
		Str("ticker", stats.Ticker).
		Dur("elapsed", time.Since(start)).
		Int("chars", len(text)).
		Msg("Model analysis received")

	result, err := ParseAnalysis(text)
	if err != nil {
		return nil, fmt.Errorf("%s response: %w", m.generator.Name(), err)
	}

	result.PriceChange6M = common.Round2(stats.PriceChange)
	result.Volatility = common.Round2(stats.Volatility)
	result.Source = m.generator.Name()
	return result, nil
}
