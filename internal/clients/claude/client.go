// Package claude provides a text-generation client for the Anthropic Messages API
package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/bobmcallan/realticker/internal/common"
)

const (
	ProviderName     = "claude"
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 300
)

// ErrMissingAPIKey is returned when no key is configured
var ErrMissingAPIKey = errors.New("anthropic API key not configured")

// Client implements interfaces.TextGenerator using the Anthropic SDK
type Client struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
	logger      arbor.ILogger
}

// ClientOption configures the client
type ClientOption func(*clientSettings)

type clientSettings struct {
	model       string
	maxTokens   int64
	temperature float64
	logger      arbor.ILogger
	requestOpts []option.RequestOption
}

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(s *clientSettings) {
		if model != "" {
			s.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(s *clientSettings) {
		s.logger = logger
	}
}

// WithSampling sets max tokens and temperature
func WithSampling(maxTokens int, temperature float64) ClientOption {
	return func(s *clientSettings) {
		if maxTokens > 0 {
			s.maxTokens = int64(maxTokens)
		}
		s.temperature = temperature
	}
}

// WithBaseURL points the client at a different API host
func WithBaseURL(baseURL string) ClientOption {
	return func(s *clientSettings) {
		s.requestOpts = append(s.requestOpts, option.WithBaseURL(baseURL))
	}
}

// NewClient creates a new Claude client. Requests are not retried; a failure
// falls straight through to the rule-based analyst.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	s := &clientSettings{
		model:       DefaultModel,
		maxTokens:   DefaultMaxTokens,
		temperature: 0.7,
		logger:      common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	requestOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, s.requestOpts...)

	return &Client{
		client:      anthropic.NewClient(requestOpts...),
		model:       s.model,
		maxTokens:   s.maxTokens,
		temperature: s.temperature,
		logger:      s.logger,
	}, nil
}

// Name returns the provider name
func (c *Client) Name() string {
	return ProviderName
}

// GenerateText sends the prompt as a single user message and returns the text blocks
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("Generating content")

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if c.temperature > 0 {
		params.Temperature = anthropic.Float(c.temperature)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Claude API")
	}

	return response.String(), nil
}
