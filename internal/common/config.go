// Package common provides shared utilities for RealTicker
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// Analyst provider names accepted in [analyst] provider.
const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
	ProviderClaude      = "claude"
	ProviderNone        = "none"
)

// PlaceholderHuggingFaceKey is the value shipped in example env files; it counts as unset.
const PlaceholderHuggingFaceKey = "your_huggingface_api_key_here"

// DefaultHuggingFaceURL is the inference endpoint used when HUGGINGFACE_API_URL is not set.
const DefaultHuggingFaceURL = "https://api-inference.huggingface.co/models/meta-llama/Meta-Llama-3.1-8B-Instruct"

// Config holds all configuration for RealTicker
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Analyst     AnalystConfig `toml:"analyst"`
	Market      MarketConfig  `toml:"market"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host" validate:"required"`
	Port int    `toml:"port" validate:"min=1,max=65535"`
}

// AnalystConfig selects the remote text-generation provider used ahead of the rule engine.
type AnalystConfig struct {
	Provider  string `toml:"provider" validate:"oneof=huggingface gemini claude none"`
	Timeout   string `toml:"timeout"`
	RateLimit int    `toml:"rate_limit" validate:"min=0"` // outbound requests per second, 0 disables pacing
}

// GetTimeout parses and returns the timeout duration
func (c *AnalystConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// MarketConfig holds synthetic data generation settings
type MarketConfig struct {
	HistoryMonths int `toml:"history_months" validate:"min=1,max=24"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	HuggingFace HuggingFaceConfig `toml:"huggingface"`
	Gemini      GeminiConfig      `toml:"gemini"`
	Claude      ClaudeConfig      `toml:"claude"`
}

// HuggingFaceConfig holds Hugging Face inference API configuration
type HuggingFaceConfig struct {
	APIKey       string  `toml:"api_key"`
	APIURL       string  `toml:"api_url" validate:"omitempty,url"`
	MaxNewTokens int     `toml:"max_new_tokens" validate:"min=1"`
	Temperature  float64 `toml:"temperature" validate:"min=0,max=2"`
	TopP         float64 `toml:"top_p" validate:"min=0,max=1"`
}

// HasKey reports whether a usable API key is configured.
func (c *HuggingFaceConfig) HasKey() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && key != PlaceholderHuggingFaceKey
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens" validate:"min=1"`
	Temperature float64 `toml:"temperature" validate:"min=0,max=2"`
	TopP        float64 `toml:"top_p" validate:"min=0,max=1"`
}

// ClaudeConfig holds Anthropic API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens" validate:"min=1"`
	Temperature float64 `toml:"temperature" validate:"min=0,max=1"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string   `toml:"level"`
	Outputs  []string `toml:"outputs"`
	FilePath string   `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Analyst: AnalystConfig{
			Provider:  ProviderHuggingFace,
			Timeout:   "30s",
			RateLimit: 5,
		},
		Market: MarketConfig{
			HistoryMonths: 6,
		},
		Clients: ClientsConfig{
			HuggingFace: HuggingFaceConfig{
				APIURL:       DefaultHuggingFaceURL,
				MaxNewTokens: 300,
				Temperature:  0.7,
				TopP:         0.9,
			},
			Gemini: GeminiConfig{
				Model:       "gemini-2.0-flash",
				MaxTokens:   300,
				Temperature: 0.7,
				TopP:        0.9,
			},
			Claude: ClaudeConfig{
				Model:       "claude-sonnet-4-20250514",
				MaxTokens:   300,
				Temperature: 0.7,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Outputs:  []string{"console"},
			FilePath: "./logs/realticker.log",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("REALTICKER_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("REALTICKER_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("REALTICKER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("REALTICKER_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if provider := os.Getenv("REALTICKER_ANALYST_PROVIDER"); provider != "" {
		config.Analyst.Provider = strings.ToLower(strings.TrimSpace(provider))
	}

	// Client keys keep their vendor-standard names
	if v := os.Getenv("HUGGINGFACE_API_KEY"); v != "" {
		config.Clients.HuggingFace.APIKey = v
	}
	if v := os.Getenv("HUGGINGFACE_API_URL"); v != "" {
		config.Clients.HuggingFace.APIURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		config.Clients.Gemini.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		config.Clients.Claude.APIKey = v
	}
}

// Validate checks the struct constraints declared on the config tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
