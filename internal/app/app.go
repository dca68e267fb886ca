// Package app wires configuration, clients, services and the MCP server
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/realticker/internal/clients/claude"
	"github.com/bobmcallan/realticker/internal/clients/gemini"
	"github.com/bobmcallan/realticker/internal/clients/huggingface"
	"github.com/bobmcallan/realticker/internal/common"
	"github.com/bobmcallan/realticker/internal/interfaces"
	"github.com/bobmcallan/realticker/internal/services/analysis"
	"github.com/bobmcallan/realticker/internal/services/market"
)

// App holds all initialized services, clients, and the MCP server.
type App struct {
	Config          *common.Config
	Logger          arbor.ILogger
	TextGenerator   interfaces.TextGenerator // nil when running rules-only
	MarketService   interfaces.MarketService
	AnalysisService interfaces.AnalysisService
	MCPServer       *server.MCPServer
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: explicit path, REALTICKER_CONFIG,
// realticker.toml beside the binary, then config/realticker.toml.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("REALTICKER_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "realticker.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/realticker.toml" // fallback for development
		}
	}
	return configPath
}

// NewApp initializes all services, clients, and the MCP server.
// configPath may be empty, in which case the default resolution logic is used.
// A missing config file is not an error; defaults and environment apply.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative log file path to binary directory
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(getBinaryDir(), config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	return newApp(context.Background(), config, logger, startupStart)
}

// NewAppWithConfig builds an App from an already loaded config.
func NewAppWithConfig(ctx context.Context, config *common.Config, logger arbor.ILogger) (*App, error) {
	return newApp(ctx, config, logger, time.Now())
}

func newApp(ctx context.Context, config *common.Config, logger arbor.ILogger, startupStart time.Time) (*App, error) {
	generator, err := newTextGenerator(ctx, config, logger)
	if err != nil {
		return nil, err
	}

	var primary interfaces.Analyst
	if generator != nil {
		primary = analysis.NewModelAnalyst(generator, config.Analyst.GetTimeout(), logger)
	}
	analyst := analysis.NewFallbackAnalyst(primary, analysis.NewRuleAnalyst(), logger)

	marketService := market.NewService(config.Market.HistoryMonths, logger)
	analysisService := analysis.NewService(marketService, analyst, logger)

	mcpServer := server.NewMCPServer(
		"realticker",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:          config,
		Logger:          logger,
		TextGenerator:   generator,
		MarketService:   marketService,
		AnalysisService: analysisService,
		MCPServer:       mcpServer,
		StartupTime:     startupStart,
	}

	a.registerTools()

	logger.Info().
		Str("analyst", a.AnalystName()).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}

// AnalystName names the analyst that runs ahead of the rule engine
func (a *App) AnalystName() string {
	if a.TextGenerator == nil {
		return analysis.SourceRules
	}
	return a.TextGenerator.Name()
}

// newTextGenerator builds the configured remote provider.
// A provider without a usable key runs rules-only and is not an error.
func newTextGenerator(ctx context.Context, config *common.Config, logger arbor.ILogger) (interfaces.TextGenerator, error) {
	hf := config.Clients.HuggingFace
	gc := config.Clients.Gemini
	cc := config.Clients.Claude

	switch config.Analyst.Provider {
	case common.ProviderHuggingFace:
		if !hf.HasKey() {
			logger.Warn().Msg("Hugging Face API key not configured - using rule-based analysis")
			return nil, nil
		}
		client, err := huggingface.NewClient(hf.APIKey,
			huggingface.WithAPIURL(hf.APIURL),
			huggingface.WithLogger(logger),
			huggingface.WithRateLimit(config.Analyst.RateLimit),
			huggingface.WithTimeout(config.Analyst.GetTimeout()),
			huggingface.WithParameters(hf.MaxNewTokens, hf.Temperature, hf.TopP),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Hugging Face client: %w", err)
		}
		return client, nil

	case common.ProviderGemini:
		if gc.APIKey == "" {
			logger.Warn().Msg("Gemini API key not configured - using rule-based analysis")
			return nil, nil
		}
		client, err := gemini.NewClient(ctx, gc.APIKey,
			gemini.WithModel(gc.Model),
			gemini.WithLogger(logger),
			gemini.WithSampling(gc.MaxTokens, gc.Temperature, gc.TopP),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		return client, nil

	case common.ProviderClaude:
		if cc.APIKey == "" {
			logger.Warn().Msg("Anthropic API key not configured - using rule-based analysis")
			return nil, nil
		}
		client, err := claude.NewClient(cc.APIKey,
			claude.WithModel(cc.Model),
			claude.WithLogger(logger),
			claude.WithSampling(cc.MaxTokens, cc.Temperature),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Claude client: %w", err)
		}
		return client, nil

	default:
		logger.Info().Str("provider", config.Analyst.Provider).Msg("Remote analyst disabled")
		return nil, nil
	}
}

// registerTools registers all MCP tools on the App's MCPServer.
func (a *App) registerTools() {
	s := a.MCPServer
	logger := a.Logger

	s.AddTool(createGetVersionTool(), handleGetVersion(a.AnalystName()))
	s.AddTool(createGetTopStocksTool(), handleGetTopStocks(a.MarketService, logger))
	s.AddTool(createGetStockHistoryTool(), handleGetStockHistory(a.MarketService, logger))
	s.AddTool(createAnalyzeStockTool(), handleAnalyzeStock(a.AnalysisService, logger))
}
