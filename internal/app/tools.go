package app

import "github.com/mark3labs/mcp-go/mcp"

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the RealTicker server version and status. Use this to verify connectivity."),
	)
}

// createGetTopStocksTool returns the get_top_stocks tool definition
func createGetTopStocksTool() mcp.Tool {
	return mcp.NewTool("get_top_stocks",
		mcp.WithDescription("List the top 10 stocks from the RealTicker catalog with fresh simulated quotes. All data is synthetic."),
		mcp.WithString("sort_by",
			mcp.Description("Ranking key: growth (default), volume, or market_cap"),
			mcp.Enum("growth", "volume", "market_cap"),
		),
	)
}

// createGetStockHistoryTool returns the get_stock_history tool definition
func createGetStockHistoryTool() mcp.Tool {
	return mcp.NewTool("get_stock_history",
		mcp.WithDescription("Generate a simulated daily OHLCV history for a catalog ticker. Returns a price summary, technical indicators and the most recent sessions."),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Ticker symbol, case-insensitive (e.g., 'NVDA', 'aapl')"),
		),
		mcp.WithNumber("months",
			mcp.Description("History length in months, 1 to 24 (default: 6)"),
		),
	)
}

// createAnalyzeStockTool returns the analyze_stock tool definition
func createAnalyzeStockTool() mcp.Tool {
	return mcp.NewTool("analyze_stock",
		mcp.WithDescription("Assess trend, risk level and a suggested action for a catalog ticker from six months of simulated history. Not financial advice."),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Ticker symbol, case-insensitive (e.g., 'TSLA')"),
		),
	)
}
