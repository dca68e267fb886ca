package analysis

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/realticker/internal/interfaces"
	"github.com/bobmcallan/realticker/internal/models"
)

// FallbackAnalyst tries a primary analyst and falls back to a secondary on any error.
// The secondary is called at most once per request; there are no retries.
type FallbackAnalyst struct {
	primary   interfaces.Analyst
	secondary interfaces.Analyst
	logger    arbor.ILogger
}

// NewFallbackAnalyst creates the combinator. A nil primary always uses the secondary.
func NewFallbackAnalyst(primary, secondary interfaces.Analyst, logger arbor.ILogger) *FallbackAnalyst {
	return &FallbackAnalyst{primary: primary, secondary: secondary, logger: logger}
}

// Analyze returns the primary result, or the secondary's when the primary fails
func (f *FallbackAnalyst) Analyze(ctx context.Context, stats *models.PriceStatistics) (*models.Analysis, error) {
	if f.primary != nil {
		result, err := f.primary.Analyze(ctx, stats)
		if err == nil {
			return result, nil
		}
		ticker := ""
		if stats != nil {
			ticker = stats.Ticker
		}
		f.logger.Warn().Err(err).Str("ticker", ticker).Msg("Remote analyst unavailable, using rule-based analysis")
	}
	return f.secondary.Analyze(ctx, stats)
}

var (
	_ interfaces.Analyst = (*FallbackAnalyst)(nil)
	_ interfaces.Analyst = (*ModelAnalyst)(nil)
	_ interfaces.Analyst = (*RuleAnalyst)(nil)
)
