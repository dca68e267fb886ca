package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/realticker/internal/common"
	"github.com/bobmcallan/realticker/internal/interfaces"
	"github.com/bobmcallan/realticker/internal/services/market"
)

// MaxHistoryMonths bounds the months argument on history requests
const MaxHistoryMonths = 24

// handleGetVersion implements the get_version tool
func handleGetVersion(analyst string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("RealTicker Server\nVersion: %s\nBuild: %s\nCommit: %s\nAnalyst: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit(), analyst)
		return textResult(result), nil
	}
}

// handleGetTopStocks implements the get_top_stocks tool
func handleGetTopStocks(marketService interfaces.MarketService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sortBy := request.GetString("sort_by", market.SortByGrowth)

		top := marketService.GetTopStocks(sortBy)
		logger.Debug().Str("sort_by", top.SortedBy).Int("count", len(top.Stocks)).Msg("MCP top stocks")

		return textResult(formatTopStocks(top)), nil
	}
}

// handleGetStockHistory implements the get_stock_history tool
func handleGetStockHistory(marketService interfaces.MarketService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}

		months := request.GetInt("months", 0)
		if months < 0 || months > MaxHistoryMonths {
			return errorResult(fmt.Sprintf("Error: months must be between 1 and %d", MaxHistoryMonths)), nil
		}

		history, err := marketService.GetHistory(ticker, months)
		if err != nil {
			if errors.Is(err, market.ErrStockNotFound) {
				return errorResult(fmt.Sprintf("Stock %s not found", market.NormalizeTicker(ticker))), nil
			}
			logger.Error().Err(err).Str("ticker", ticker).Msg("History generation failed")
			return errorResult(fmt.Sprintf("History error: %v", err)), nil
		}

		return textResult(formatHistory(history, recentSessions)), nil
	}
}

// handleAnalyzeStock implements the analyze_stock tool
func handleAnalyzeStock(analysisService interfaces.AnalysisService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}

		result, err := analysisService.AnalyzeStock(ctx, ticker)
		if err != nil {
			if errors.Is(err, market.ErrStockNotFound) {
				return errorResult(fmt.Sprintf("Stock %s not found", market.NormalizeTicker(ticker))), nil
			}
			logger.Error().Err(err).Str("ticker", ticker).Msg("Analysis failed")
			return errorResult(fmt.Sprintf("Analysis error: %v", err)), nil
		}

		return textResult(formatAnalysis(result)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
